package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dysobo/niuzi-assistant/internal/config"
	"github.com/dysobo/niuzi-assistant/internal/domain"
	"github.com/dysobo/niuzi-assistant/internal/service"
	"github.com/dysobo/niuzi-assistant/internal/stats"
)

func newReportCmd() *cobra.Command {
	var username, format string
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's stats, daily series and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg); err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := db.Users().GetByUsername(ctx, username)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("user %q not found", username)
				}
				return fmt.Errorf("get user: %w", err)
			}

			engine := stats.NewEngine(loc)
			report, err := service.NewStatsService(db.Records(), engine).Report(ctx, user.ID, days)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, newReportDoc(user.Username, time.Now().In(loc), report))
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "user to report on")
	cmd.Flags().IntVar(&days, "days", stats.DefaultDailyWindow, "length of the daily series")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json|yaml")
	return cmd
}

type reportDoc struct {
	Username     string           `json:"username" yaml:"username"`
	GeneratedAt  string           `json:"generated_at" yaml:"generated_at"`
	Summary      summaryDoc       `json:"summary" yaml:"summary"`
	Daily        []dailyDoc       `json:"daily" yaml:"daily"`
	Unlocked     int              `json:"unlocked" yaml:"unlocked"`
	Achievements []achievementDoc `json:"achievements" yaml:"achievements"`
}

type summaryDoc struct {
	TotalRecords    int64 `json:"total_records" yaml:"total_records"`
	TotalDuration   int64 `json:"total_duration" yaml:"total_duration"`
	AvgDuration     int64 `json:"avg_duration" yaml:"avg_duration"`
	LongestDuration int64 `json:"longest_duration" yaml:"longest_duration"`
	StreakDays      int64 `json:"streak_days" yaml:"streak_days"`
	Last30DaysCount int64 `json:"last_30_days_count" yaml:"last_30_days_count"`
}

type dailyDoc struct {
	Date     string `json:"date" yaml:"date"`
	Count    int64  `json:"count" yaml:"count"`
	Duration int64  `json:"duration" yaml:"duration"`
}

type achievementDoc struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Icon     string `json:"icon" yaml:"icon"`
	Unlocked bool   `json:"unlocked" yaml:"unlocked"`
	Progress int64  `json:"progress" yaml:"progress"`
	Target   int64  `json:"target" yaml:"target"`
}

func newReportDoc(username string, now time.Time, r stats.Report) reportDoc {
	doc := reportDoc{
		Username:    username,
		GeneratedAt: now.Format(time.RFC3339),
		Summary: summaryDoc{
			TotalRecords:    r.Summary.TotalRecords,
			TotalDuration:   r.Summary.TotalDuration,
			AvgDuration:     r.Summary.AvgDuration,
			LongestDuration: r.Summary.LongestDuration,
			StreakDays:      r.Summary.StreakDays,
			Last30DaysCount: r.Summary.Last30DaysCount,
		},
		Daily:        make([]dailyDoc, len(r.Daily)),
		Unlocked:     stats.UnlockedCount(r.Achievements),
		Achievements: make([]achievementDoc, len(r.Achievements)),
	}
	for i, b := range r.Daily {
		doc.Daily[i] = dailyDoc{Date: b.Day.String(), Count: b.Count, Duration: b.Duration}
	}
	for i, a := range r.Achievements {
		doc.Achievements[i] = achievementDoc{
			ID:       a.ID,
			Name:     a.Name,
			Icon:     a.Icon,
			Unlocked: a.Unlocked,
			Progress: a.Progress,
			Target:   a.Target,
		}
	}
	return doc
}

func writeReport(w io.Writer, format string, doc reportDoc) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
}
