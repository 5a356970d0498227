// Package view renders the HTML fragments pushed to the browser by the live
// stats feed.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dysobo/niuzi-assistant/internal/stats"
)

// Element IDs patched by the live feed.
const (
	AchievementsID = "achievements"
	SummaryID      = "summary"
)

// Achievements renders the achievement grid, unlocked entries first in
// catalog order followed by locked ones.
func Achievements(results []stats.AchievementResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s" class="achievements">`, AchievementsID)
		fmt.Fprintf(&b, `<p class="achievements-count">%d / %d</p>`, stats.UnlockedCount(results), len(results))
		for _, unlocked := range []bool{true, false} {
			for _, r := range results {
				if r.Unlocked == unlocked {
					writeAchievement(&b, r)
				}
			}
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAchievement(b *strings.Builder, r stats.AchievementResult) {
	state := "locked"
	if r.Unlocked {
		state = "unlocked"
	}
	fmt.Fprintf(b, `<div class="achievement %s" data-id="%s">`, state, templ.EscapeString(r.ID))
	fmt.Fprintf(b, `<span class="icon">%s</span>`, templ.EscapeString(r.Icon))
	fmt.Fprintf(b, `<strong>%s</strong>`, templ.EscapeString(r.Name))
	fmt.Fprintf(b, `<small>%s</small>`, templ.EscapeString(r.Description))
	fmt.Fprintf(b, `<progress value="%d" max="%d"></progress>`, r.Progress, r.Target)
	b.WriteString(`</div>`)
}

// Summary renders the headline numbers.
func Summary(s stats.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<dl id="%s" class="summary">`, SummaryID)
		for _, item := range []struct {
			label string
			value string
		}{
			{"总次数", fmt.Sprint(s.TotalRecords)},
			{"总时长", FormatDuration(s.TotalDuration)},
			{"平均时长", FormatDuration(s.AvgDuration)},
			{"最长时长", FormatDuration(s.LongestDuration)},
			{"连续天数", fmt.Sprint(s.StreakDays)},
			{"近30天", fmt.Sprint(s.Last30DaysCount)},
		} {
			fmt.Fprintf(&b, `<dt>%s</dt><dd>%s</dd>`, item.label, item.value)
		}
		b.WriteString(`</dl>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FormatDuration renders whole seconds as h:mm:ss.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
