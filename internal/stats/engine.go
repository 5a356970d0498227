// Package stats turns a user's timed records into summary statistics,
// per-day aggregates and evaluated achievements.
//
// Everything here is a pure function of its inputs: nothing is cached and
// nothing is retained between calls, so an Engine may be shared freely
// between goroutines.
package stats

import (
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// Engine binds the reference location used to derive calendar days and the
// clock used as "now".
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an Engine for loc. A nil loc means time.Local.
func NewEngine(loc *time.Location, opts ...Option) *Engine {
	if loc == nil {
		loc = time.Local
	}
	e := &Engine{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the engine's reference location.
func (e *Engine) Location() *time.Location { return e.loc }

// Summary computes the headline statistics as of the engine's clock.
func (e *Engine) Summary(records []domain.Record) Summary {
	return Summarize(records, e.now(), e.loc)
}

// Daily returns the dense per-day series for the trailing days, oldest first.
func (e *Engine) Daily(records []domain.Record, days int) []DailyBucket {
	return Daily(records, e.now(), e.loc, days)
}

// Achievements evaluates the full catalog in catalog order.
func (e *Engine) Achievements(records []domain.Record) []AchievementResult {
	return Evaluate(records, e.loc)
}

// Report bundles every view the engine offers for one snapshot.
type Report struct {
	Summary      Summary
	Daily        []DailyBucket
	Achievements []AchievementResult
}

// Report computes Summary, Daily and Achievements from a single aggregation
// pass, all against the same instant.
func (e *Engine) Report(records []domain.Record, days int) Report {
	now := e.now()

	buckets := Aggregate(records, e.loc)
	summary := Summarize(records, now, e.loc)
	return Report{
		Summary:      summary,
		Daily:        dailyFromBuckets(buckets, now, e.loc, days),
		Achievements: metricsFrom(summary, buckets).Evaluate(),
	}
}
