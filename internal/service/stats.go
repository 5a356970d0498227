package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dysobo/niuzi-assistant/internal/domain"
	"github.com/dysobo/niuzi-assistant/internal/stats"
)

var tracer = otel.Tracer("github.com/dysobo/niuzi-assistant/internal/service")

// StatsService loads a user's full record history and runs it through the
// stats engine. Results are recomputed on every call.
type StatsService struct {
	records domain.RecordRepository
	engine  *stats.Engine
}

// NewStatsService creates a new StatsService.
func NewStatsService(records domain.RecordRepository, engine *stats.Engine) *StatsService {
	return &StatsService{records: records, engine: engine}
}

// Summary returns the headline statistics for the user.
func (s *StatsService) Summary(ctx context.Context, userID int64) (stats.Summary, error) {
	ctx, span := tracer.Start(ctx, "StatsService.Summary")
	defer span.End()

	records, err := s.load(ctx, span, userID)
	if err != nil {
		return stats.Summary{}, err
	}
	return s.engine.Summary(records), nil
}

// Daily returns the trailing per-day series for the user.
func (s *StatsService) Daily(ctx context.Context, userID int64, days int) ([]stats.DailyBucket, error) {
	ctx, span := tracer.Start(ctx, "StatsService.Daily", trace.WithAttributes(attribute.Int("days", days)))
	defer span.End()

	records, err := s.load(ctx, span, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.Daily(records, days), nil
}

// Achievements evaluates the achievement catalog for the user.
func (s *StatsService) Achievements(ctx context.Context, userID int64) ([]stats.AchievementResult, error) {
	ctx, span := tracer.Start(ctx, "StatsService.Achievements")
	defer span.End()

	records, err := s.load(ctx, span, userID)
	if err != nil {
		return nil, err
	}
	results := s.engine.Achievements(records)
	span.SetAttributes(attribute.Int("achievements.unlocked", stats.UnlockedCount(results)))
	return results, nil
}

// Report computes summary, daily series and achievements from one load.
func (s *StatsService) Report(ctx context.Context, userID int64, days int) (stats.Report, error) {
	ctx, span := tracer.Start(ctx, "StatsService.Report")
	defer span.End()

	records, err := s.load(ctx, span, userID)
	if err != nil {
		return stats.Report{}, err
	}
	return s.engine.Report(records, days), nil
}

func (s *StatsService) load(ctx context.Context, span trace.Span, userID int64) ([]domain.Record, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.Int("records.count", len(records)),
	)
	return records, nil
}
