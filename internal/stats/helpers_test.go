package stats_test

import (
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

func date(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

// closed builds a finished record of the given length in seconds.
func closed(start time.Time, seconds int64) domain.Record {
	end := start.Add(time.Duration(seconds) * time.Second)
	return domain.Record{StartTime: start, EndTime: &end, Duration: &seconds}
}

func open(start time.Time) domain.Record {
	return domain.Record{StartTime: start}
}
