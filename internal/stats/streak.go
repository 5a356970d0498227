package stats

import (
	"slices"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// LongestRun returns the length of the longest run of calendar-adjacent days.
// Duplicates in days are ignored.
func LongestRun(days []DayKey) int64 {
	if len(days) == 0 {
		return 0
	}

	sorted := slices.Clone(days)
	slices.SortFunc(sorted, DayKey.Compare)
	sorted = slices.Compact(sorted)

	var longest, run int64
	for i, day := range sorted {
		if i > 0 && sorted[i-1].AddDays(1) == day {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// CurrentStreak walks backward from today over completed records, newest
// first, counting each day on which a completed record started.
//
// A missing day moves the cursor back without ending the walk, so older
// days still count after a gap. Records starting after the cursor day (for
// example later today, after a same-day match, or in the future) are
// skipped. The walk ends once every completed record has been consumed.
func CurrentStreak(records []domain.Record, now time.Time, loc *time.Location) int64 {
	completed := make([]DayKey, 0, len(records))
	starts := make([]time.Time, 0, len(records))
	for i := range records {
		if records[i].EndTime == nil {
			continue
		}
		starts = append(starts, records[i].StartTime)
	}
	slices.SortFunc(starts, func(a, b time.Time) int { return b.Compare(a) })
	for _, s := range starts {
		completed = append(completed, DayOf(s, loc))
	}

	var streak int64
	cursor := DayOf(now, loc)
	for i := 0; i < len(completed); {
		day := completed[i]
		switch c := day.Compare(cursor); {
		case c == 0:
			streak++
			cursor = cursor.AddDays(-1)
			i++
		case c < 0:
			cursor = cursor.AddDays(-1)
		default:
			i++
		}
	}
	return streak
}
