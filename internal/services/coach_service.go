package services

import (
	"context"
	"time"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/logger"
	"fincoach/internal/models"
)

// coachService runs the insight pipeline: compute metrics, generate drafts,
// persist them. Each call makes exactly one attempt; retries belong to the
// caller.
type coachService struct {
	metrics   MetricsCalculator
	generator InsightGenerator
	insights  InsightServicer
	now       func() time.Time
}

// NewCoachService creates a new CoachServicer. A nil clock uses time.Now.
func NewCoachService(metrics MetricsCalculator, generator InsightGenerator, insights InsightServicer, clock func() time.Time) CoachServicer {
	if clock == nil {
		clock = time.Now
	}
	return &coachService{
		metrics:   metrics,
		generator: generator,
		insights:  insights,
		now:       clock,
	}
}

// GenerateInsightsFor runs one pipeline invocation for the user and returns
// the number of insights stored. Only not-found and persistence errors are
// returned; model failures are absorbed by the generator.
func (s *coachService) GenerateInsightsFor(ctx context.Context, userID string) (int, error) {
	log := logger.Named("coach").With("user_id", userID)
	started := time.Now()

	snapshot, err := s.metrics.Compute(ctx, userID, s.now())
	if err != nil {
		if apperrors.IsNotFound(err) {
			log.Infow("skipping insight generation for unknown user")
		} else {
			log.Errorw("failed to compute metrics", "error", err)
		}
		return 0, err
	}
	log.Debugw("metrics computed",
		"period_start", snapshot.CurrentPeriod.Start.Format(time.DateOnly),
		"current_spend", snapshot.CurrentSpend.String(),
		"prior_spend", snapshot.PriorSpend.String(),
		"top_category", snapshot.TopCategory,
	)

	drafts := s.generator.Generate(ctx, snapshot)

	created, err := s.insights.Persist(ctx, userID, drafts)
	if err != nil {
		log.Errorw("failed to persist insights", "drafts", len(drafts), "error", err)
		return 0, err
	}

	log.Infow("insights generated",
		"created", len(created),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return len(created), nil
}

// ListInsights returns the user's newest insights.
func (s *coachService) ListInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error) {
	return s.insights.ListInsights(ctx, userID, limit)
}

// MarkRead marks one insight as read.
func (s *coachService) MarkRead(ctx context.Context, insightID string) error {
	return s.insights.MarkRead(ctx, insightID)
}
