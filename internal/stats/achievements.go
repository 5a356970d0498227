package stats

import (
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// AchievementResult is the evaluated state of one catalog entry.
type AchievementResult struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
	Progress    int64
	Target      int64
}

// Metrics holds every value the catalog is measured against.
type Metrics struct {
	TotalRecords      int64
	LongestRun        int64
	MaxDailyRecords   int64
	MaxSingleDuration int64
	TotalDuration     int64
	DistinctDays      int64
}

// ComputeMetrics derives Metrics from records. It does not depend on the
// evaluation time.
func ComputeMetrics(records []domain.Record, loc *time.Location) Metrics {
	return metricsFrom(totals(records), Aggregate(records, loc))
}

func metricsFrom(s Summary, buckets map[DayKey]DailyBucket) Metrics {
	days := make([]DayKey, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	return Metrics{
		TotalRecords:      s.TotalRecords,
		LongestRun:        LongestRun(days),
		MaxDailyRecords:   MaxDailyCount(buckets),
		MaxSingleDuration: s.LongestDuration,
		TotalDuration:     s.TotalDuration,
		DistinctDays:      int64(len(buckets)),
	}
}

// Value returns the metric value for the given family.
func (m Metrics) Value(metric Metric) int64 {
	switch metric {
	case MetricFirstRecord:
		if m.TotalRecords > 0 {
			return 1
		}
		return 0
	case MetricConsecutiveDays:
		return m.LongestRun
	case MetricTotalRecords:
		return m.TotalRecords
	case MetricMaxDailyRecords:
		return m.MaxDailyRecords
	case MetricMaxSingleDuration:
		return m.MaxSingleDuration
	case MetricTotalDuration:
		return m.TotalDuration
	case MetricTotalDistinctDays:
		return m.DistinctDays
	default:
		return 0
	}
}

// Evaluate applies the catalog to m, returning one result per entry in
// catalog order.
func (m Metrics) Evaluate() []AchievementResult {
	var resolved [len(metricNames)]int64
	for metric := range resolved {
		resolved[metric] = m.Value(Metric(metric))
	}

	results := make([]AchievementResult, len(catalog))
	for i, def := range catalog {
		value := resolved[def.Metric]
		results[i] = AchievementResult{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Unlocked:    value >= def.Threshold,
			Progress:    min(value, def.Threshold),
			Target:      def.Threshold,
		}
	}
	return results
}

// Evaluate computes the achievement list for records.
func Evaluate(records []domain.Record, loc *time.Location) []AchievementResult {
	return ComputeMetrics(records, loc).Evaluate()
}

// UnlockedCount reports how many results are unlocked.
func UnlockedCount(results []AchievementResult) int {
	n := 0
	for _, r := range results {
		if r.Unlocked {
			n++
		}
	}
	return n
}
