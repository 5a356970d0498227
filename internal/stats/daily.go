package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// DayKey identifies a calendar date in the engine's reference location.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar date of t in loc.
func DayOf(t time.Time, loc *time.Location) DayKey {
	y, m, d := t.In(loc).Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// AddDays shifts the key by n calendar days. Normalization is done in UTC
// so DST transitions in the reference location cannot skip or repeat a day.
func (k DayKey) AddDays(n int) DayKey {
	y, m, d := time.Date(k.Year, k.Month, k.Day+n, 0, 0, 0, 0, time.UTC).Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// Compare orders keys chronologically.
func (k DayKey) Compare(o DayKey) int {
	if c := cmp.Compare(k.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(k.Day, o.Day)
}

// String formats the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// DailyBucket aggregates the records that started on one day.
type DailyBucket struct {
	Day      DayKey
	Count    int64
	Duration int64 // seconds, completed records only
}

// Aggregate buckets records by the day their StartTime falls on in loc.
// Open records are counted but contribute no duration.
func Aggregate(records []domain.Record, loc *time.Location) map[DayKey]DailyBucket {
	buckets := make(map[DayKey]DailyBucket)
	for i := range records {
		r := &records[i]
		day := DayOf(r.StartTime, loc)
		b := buckets[day]
		b.Day = day
		b.Count++
		if r.Duration != nil {
			b.Duration += *r.Duration
		}
		buckets[day] = b
	}
	return buckets
}

// SortedBuckets returns the buckets ordered by day ascending.
func SortedBuckets(buckets map[DayKey]DailyBucket) []DailyBucket {
	out := make([]DailyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b DailyBucket) int { return a.Day.Compare(b.Day) })
	return out
}

// MaxDailyCount returns the largest bucket count, or 0 when there are none.
func MaxDailyCount(buckets map[DayKey]DailyBucket) int64 {
	var best int64
	for _, b := range buckets {
		best = max(best, b.Count)
	}
	return best
}

const (
	DefaultDailyWindow = 30
	MaxDailyWindow     = 366
)

// Daily returns a dense series for the trailing window of days ending today
// (inclusive), oldest first. Days without records are present with zero
// values so chart and calendar consumers get one point per day.
func Daily(records []domain.Record, now time.Time, loc *time.Location, days int) []DailyBucket {
	return dailyFromBuckets(Aggregate(records, loc), now, loc, days)
}

func dailyFromBuckets(buckets map[DayKey]DailyBucket, now time.Time, loc *time.Location, days int) []DailyBucket {
	if days <= 0 {
		days = DefaultDailyWindow
	}
	days = min(days, MaxDailyWindow)

	today := DayOf(now, loc)
	series := make([]DailyBucket, days)
	for i := range series {
		day := today.AddDays(i - days + 1)
		b, ok := buckets[day]
		if !ok {
			b = DailyBucket{Day: day}
		}
		series[i] = b
	}
	return series
}
