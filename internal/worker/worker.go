// Package worker runs insight generation outside a request: once per AMQP
// trigger, and as a periodic sweep over every user.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fincoach/internal/amqp"
	apperrors "fincoach/internal/errors"
	"fincoach/internal/logger"
)

// DefaultConcurrency bounds parallel runs when none is configured.
const DefaultConcurrency = 4

// UserLister lists the users a sweep covers.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// InsightRunner runs one pipeline invocation for a user.
type InsightRunner interface {
	GenerateInsightsFor(ctx context.Context, userID string) (int, error)
}

// SweepFailure records a user whose run failed.
type SweepFailure struct {
	UserID string
	Err    error
}

// SweepResult contains the outcome of a sweep.
type SweepResult struct {
	Users           int
	InsightsCreated int
	Skipped         int
	Failures        []SweepFailure
	Duration        time.Duration
}

// InsightWorker triggers insight generation for one user or for all users.
type InsightWorker struct {
	users       UserLister
	runner      InsightRunner
	concurrency int
}

// NewInsightWorker creates a worker. Runs for different users proceed in
// parallel up to concurrency; a single run is never split.
func NewInsightWorker(users UserLister, runner InsightRunner, concurrency int) *InsightWorker {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &InsightWorker{users: users, runner: runner, concurrency: concurrency}
}

// HandleGenerateMessage runs the pipeline for a trigger. Unknown users and
// invalid input are permanent failures; everything else is retried by the
// broker.
func (w *InsightWorker) HandleGenerateMessage(ctx context.Context, msg *amqp.GenerateInsightsMessage) error {
	created, err := w.runner.GenerateInsightsFor(ctx, msg.UserID)
	if err != nil {
		if isPermanent(err) {
			return amqp.Permanent(err)
		}
		return err
	}

	logger.Named("worker").Infow("trigger processed",
		"user_id", msg.UserID,
		"created", created,
		"queued_for_ms", time.Since(msg.RequestedAt).Milliseconds(),
	)
	return nil
}

// Sweep runs the pipeline once for every user. Individual failures are
// collected in the result; only failing to list users is an error.
func (w *InsightWorker) Sweep(ctx context.Context) (*SweepResult, error) {
	start := time.Now()
	log := logger.Named("worker")

	ids, err := w.users.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Users: len(ids)}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			created, err := w.runner.GenerateInsightsFor(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.InsightsCreated += created
			case apperrors.IsNotFound(err):
				result.Skipped++
			default:
				result.Failures = append(result.Failures, SweepFailure{UserID: id, Err: err})
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Duration = time.Since(start)
	log.Infow("sweep completed",
		"users", result.Users,
		"insights_created", result.InsightsCreated,
		"skipped", result.Skipped,
		"failures", len(result.Failures),
		"duration", result.Duration.String(),
	)
	for _, f := range result.Failures {
		log.Warnw("insight generation failed", "user_id", f.UserID, "error", f.Err)
	}

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, nil
}

// Run sweeps immediately and then every interval until ctx is done.
func (w *InsightWorker) Run(ctx context.Context, interval time.Duration) error {
	log := logger.Named("worker")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.Sweep(ctx); err != nil && ctx.Err() == nil {
			log.Errorw("sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func isPermanent(err error) bool {
	return apperrors.IsNotFound(err) || errors.Is(err, apperrors.ErrInvalidInput)
}
