package handler

import (
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
	"github.com/dysobo/niuzi-assistant/internal/stats"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// RecordDTO is the JSON representation of a record. EndTime and Duration
// are null while the record is open.
type RecordDTO struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Duration  *int64  `json:"duration"`
	CreatedAt string  `json:"created_at"`
}

func toRecordDTO(r *domain.Record) RecordDTO {
	dto := RecordDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		StartTime: r.StartTime.Format(time.RFC3339),
		Duration:  r.Duration,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.EndTime != nil {
		end := r.EndTime.Format(time.RFC3339)
		dto.EndTime = &end
	}
	return dto
}

func toRecordDTOs(records []domain.Record) []RecordDTO {
	dtos := make([]RecordDTO, len(records))
	for i := range records {
		dtos[i] = toRecordDTO(&records[i])
	}
	return dtos
}

// StatsDTO is the JSON representation of a stats summary.
type StatsDTO struct {
	TotalRecords    int64 `json:"total_records"`
	TotalDuration   int64 `json:"total_duration"`
	AvgDuration     int64 `json:"avg_duration"`
	LongestDuration int64 `json:"longest_duration"`
	StreakDays      int64 `json:"streak_days"`
	Last30DaysCount int64 `json:"last_30_days_count"`
}

func toStatsDTO(s stats.Summary) StatsDTO {
	return StatsDTO{
		TotalRecords:    s.TotalRecords,
		TotalDuration:   s.TotalDuration,
		AvgDuration:     s.AvgDuration,
		LongestDuration: s.LongestDuration,
		StreakDays:      s.StreakDays,
		Last30DaysCount: s.Last30DaysCount,
	}
}

// DailyDTO is one day of the daily series.
type DailyDTO struct {
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	Duration int64  `json:"duration"`
}

func toDailyDTOs(buckets []stats.DailyBucket) []DailyDTO {
	dtos := make([]DailyDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = DailyDTO{Date: b.Day.String(), Count: b.Count, Duration: b.Duration}
	}
	return dtos
}

// AchievementDTO is the JSON representation of an evaluated achievement.
type AchievementDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int64  `json:"progress"`
	Target      int64  `json:"target"`
}

func toAchievementDTOs(results []stats.AchievementResult) []AchievementDTO {
	dtos := make([]AchievementDTO, len(results))
	for i, r := range results {
		dtos[i] = AchievementDTO{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Icon:        r.Icon,
			Unlocked:    r.Unlocked,
			Progress:    r.Progress,
			Target:      r.Target,
		}
	}
	return dtos
}
