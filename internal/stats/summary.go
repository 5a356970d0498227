package stats

import (
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// Summary holds the headline statistics for one user's records.
// Durations are in whole seconds.
type Summary struct {
	TotalRecords    int64
	TotalDuration   int64
	AvgDuration     int64
	LongestDuration int64
	StreakDays      int64
	Last30DaysCount int64
}

// RecentWindowDays is the length of the sliding window behind Last30DaysCount.
const RecentWindowDays = 30

// Summarize computes the Summary for records as of now.
func Summarize(records []domain.Record, now time.Time, loc *time.Location) Summary {
	s := totals(records)

	windowStart := now.In(loc).AddDate(0, 0, -RecentWindowDays)
	for i := range records {
		start := records[i].StartTime
		if !start.Before(windowStart) && !start.After(now) {
			s.Last30DaysCount++
		}
	}

	s.StreakDays = CurrentStreak(records, now, loc)
	return s
}

// totals fills the fields that do not depend on the evaluation time.
func totals(records []domain.Record) Summary {
	s := Summary{TotalRecords: int64(len(records))}
	for i := range records {
		if d := records[i].Duration; d != nil {
			s.TotalDuration += *d
			s.LongestDuration = max(s.LongestDuration, *d)
		}
	}
	if s.TotalRecords > 0 {
		s.AvgDuration = s.TotalDuration / s.TotalRecords
	}
	return s
}
