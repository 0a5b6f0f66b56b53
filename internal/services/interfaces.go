package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fincoach/internal/models"
)

// Period is a closed interval of calendar dates. Start and End are midnight
// UTC and both days are included.
type Period struct {
	Start time.Time
	End   time.Time
}

// CategoryTotal is one row of a per-category aggregate.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MetricsSnapshot holds the indicators fed to the insight generator. It is
// derived fresh on every run and never stored.
type MetricsSnapshot struct {
	UserID            string
	MonthName         string
	CurrentPeriod     Period
	PriorPeriod       Period
	CurrentSpend      decimal.Decimal
	PriorSpend        decimal.Decimal
	TopCategory       string
	TopCategoryAmount decimal.Decimal
	CurrentIncome     decimal.Decimal
	SavingsRate       decimal.Decimal
	HasIncome         bool
	Goals             string
}

// InsightDraft is an unpersisted insight, either parsed from model output or
// built by the fallback.
type InsightDraft struct {
	Title   string             `json:"title" validate:"required"`
	Message string             `json:"message" validate:"required"`
	Type    models.InsightType `json:"type" validate:"required,insight_type"`
}

// LedgerReader defines read-only aggregates over the transaction ledger.
type LedgerReader interface {
	SumAmounts(ctx context.Context, userID string, txType models.TransactionType, period Period) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) ([]CategoryTotal, error)
	TopCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) (*CategoryTotal, error)
}

// UserServicer defines the contract for user lookups.
type UserServicer interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// MetricsCalculator derives a MetricsSnapshot for a user as of today.
type MetricsCalculator interface {
	Compute(ctx context.Context, userID string, today time.Time) (*MetricsSnapshot, error)
}

// InsightGenerator turns a snapshot into drafts. It never fails: model and
// parse failures produce the fallback draft instead.
type InsightGenerator interface {
	Generate(ctx context.Context, snapshot *MetricsSnapshot) []InsightDraft
}

// InsightServicer defines the contract for the insight store.
type InsightServicer interface {
	Persist(ctx context.Context, userID string, drafts []InsightDraft) ([]models.Insight, error)
	ListInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error)
	MarkRead(ctx context.Context, insightID string) error
}

// CoachServicer defines the caller-facing operations of the insight pipeline.
type CoachServicer interface {
	GenerateInsightsFor(ctx context.Context, userID string) (int, error)
	ListInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error)
	MarkRead(ctx context.Context, insightID string) error
}
