package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fincoach/internal/models"
	"fincoach/internal/money"
)

// NoCategory labels the top category when no categorized debits exist.
const NoCategory = "N/A"

// metricsService derives snapshots from the ledger and the user record.
type metricsService struct {
	users  UserServicer
	ledger LedgerReader
}

// NewMetricsService creates a new MetricsCalculator.
func NewMetricsService(users UserServicer, ledger LedgerReader) MetricsCalculator {
	return &metricsService{users: users, ledger: ledger}
}

// Compute builds the snapshot for userID as of today. The user is resolved
// first so an unknown user never reaches the ledger.
func (s *metricsService) Compute(ctx context.Context, userID string, today time.Time) (*MetricsSnapshot, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := CurrentPeriod(today)
	prior := PriorPeriod(today)

	currentSpend, err := s.ledger.SumAmounts(ctx, user.ID, models.TransactionTypeDebit, current)
	if err != nil {
		return nil, err
	}
	priorSpend, err := s.ledger.SumAmounts(ctx, user.ID, models.TransactionTypeDebit, prior)
	if err != nil {
		return nil, err
	}
	income, err := s.ledger.SumAmounts(ctx, user.ID, models.TransactionTypeCredit, current)
	if err != nil {
		return nil, err
	}
	top, err := s.ledger.TopCategory(ctx, user.ID, models.TransactionTypeDebit, current)
	if err != nil {
		return nil, err
	}

	snapshot := &MetricsSnapshot{
		UserID:            user.ID,
		MonthName:         current.Start.Month().String(),
		CurrentPeriod:     current,
		PriorPeriod:       prior,
		CurrentSpend:      currentSpend,
		PriorSpend:        priorSpend,
		TopCategory:       NoCategory,
		TopCategoryAmount: decimal.Zero,
		CurrentIncome:     income,
		SavingsRate:       decimal.Zero,
		Goals:             user.GoalText(),
	}
	if top != nil {
		snapshot.TopCategory = top.Category
		snapshot.TopCategoryAmount = top.Total
	}
	if income.IsPositive() {
		snapshot.HasIncome = true
		snapshot.SavingsRate = money.Percent(income.Sub(currentSpend), income)
	}
	return snapshot, nil
}
