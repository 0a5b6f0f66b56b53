package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/models"
	"fincoach/internal/money"
)

// ledgerService answers aggregate queries over transactions. Amounts are
// summed as integer cents in SQL and converted to decimals afterwards.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerReader.
func NewLedgerService(db *gorm.DB) LedgerReader {
	return &ledgerService{db: db}
}

func (s *ledgerService) scope(ctx context.Context, userID string, txType models.TransactionType, period Period) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND transaction_type = ? AND date >= ? AND date < ?",
			userID, txType, period.Start, period.until())
}

// SumAmounts returns the total of matching transactions, or zero when none match.
func (s *ledgerService) SumAmounts(ctx context.Context, userID string, txType models.TransactionType, period Period) (decimal.Decimal, error) {
	var cents int64
	if err := s.scope(ctx, userID, txType, period).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&cents).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return money.FromCents(cents), nil
}

// SumByCategory returns one row per category, largest total first. Rows
// without a category are excluded; equal totals are ordered by name.
func (s *ledgerService) SumByCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) ([]CategoryTotal, error) {
	return s.sumByCategory(ctx, userID, txType, period, 0)
}

// TopCategory returns the first row of SumByCategory, or nil when no
// categorized rows match.
func (s *ledgerService) TopCategory(ctx context.Context, userID string, txType models.TransactionType, period Period) (*CategoryTotal, error) {
	rows, err := s.sumByCategory(ctx, userID, txType, period, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *ledgerService) sumByCategory(ctx context.Context, userID string, txType models.TransactionType, period Period, limit int) ([]CategoryTotal, error) {
	var rows []struct {
		Category string
		Total    int64
	}

	q := s.scope(ctx, userID, txType, period).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("category IS NOT NULL AND category <> ''").
		Group("category").
		Order("total DESC, category ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	totals := make([]CategoryTotal, 0, len(rows))
	for _, r := range rows {
		totals = append(totals, CategoryTotal{Category: r.Category, Total: money.FromCents(r.Total)})
	}
	return totals, nil
}
