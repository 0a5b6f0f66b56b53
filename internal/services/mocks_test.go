package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fincoach/internal/models"
)

// mockUserService implements UserServicer for testing.
type mockUserService struct {
	getUserByIDFn func(ctx context.Context, id string) (*models.User, error)
	listUserIDsFn func(ctx context.Context) ([]string, error)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return m.getUserByIDFn(ctx, id)
}

func (m *mockUserService) ListUserIDs(ctx context.Context) ([]string, error) {
	return m.listUserIDsFn(ctx)
}

// mockLedger implements LedgerReader for testing.
type mockLedger struct {
	sumAmountsFn    func(ctx context.Context, userID string, txType models.TransactionType, period Period) (decimal.Decimal, error)
	sumByCategoryFn func(ctx context.Context, userID string, txType models.TransactionType, period Period) ([]CategoryTotal, error)
	topCategoryFn   func(ctx context.Context, userID string, txType models.TransactionType, period Period) (*CategoryTotal, error)
}

func (m *mockLedger) SumAmounts(ctx context.Context, userID string, txType models.TransactionType, period Period) (decimal.Decimal, error) {
	return m.sumAmountsFn(ctx, userID, txType, period)
}

func (m *mockLedger) SumByCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) ([]CategoryTotal, error) {
	return m.sumByCategoryFn(ctx, userID, txType, period)
}

func (m *mockLedger) TopCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) (*CategoryTotal, error) {
	return m.topCategoryFn(ctx, userID, txType, period)
}

// mockMetrics implements MetricsCalculator for testing.
type mockMetrics struct {
	computeFn func(ctx context.Context, userID string, today time.Time) (*MetricsSnapshot, error)
}

func (m *mockMetrics) Compute(ctx context.Context, userID string, today time.Time) (*MetricsSnapshot, error) {
	return m.computeFn(ctx, userID, today)
}

// mockGenerator implements InsightGenerator for testing.
type mockGenerator struct {
	generateFn func(ctx context.Context, snapshot *MetricsSnapshot) []InsightDraft
}

func (m *mockGenerator) Generate(ctx context.Context, snapshot *MetricsSnapshot) []InsightDraft {
	return m.generateFn(ctx, snapshot)
}

// mockInsightService implements InsightServicer for testing.
type mockInsightService struct {
	persistFn      func(ctx context.Context, userID string, drafts []InsightDraft) ([]models.Insight, error)
	listInsightsFn func(ctx context.Context, userID string, limit int) ([]models.Insight, error)
	markReadFn     func(ctx context.Context, insightID string) error
}

func (m *mockInsightService) Persist(ctx context.Context, userID string, drafts []InsightDraft) ([]models.Insight, error) {
	return m.persistFn(ctx, userID, drafts)
}

func (m *mockInsightService) ListInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error) {
	return m.listInsightsFn(ctx, userID, limit)
}

func (m *mockInsightService) MarkRead(ctx context.Context, insightID string) error {
	return m.markReadFn(ctx, insightID)
}

// fixedClock returns a clock pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
