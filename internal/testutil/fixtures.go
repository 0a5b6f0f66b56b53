package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fincoach/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// CreateTestUser creates a user with a unique username and no goal.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithGoal(t, db, nil)
}

// CreateTestUserWithGoal creates a user with the given goal statement.
func CreateTestUserWithGoal(t *testing.T, db *gorm.DB, goal *string) *models.User {
	t.Helper()

	user := &models.User{
		Username:       fmt.Sprintf("user%d", nextID()),
		FinancialGoals: goal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a ledger row. Amount is in cents; an empty
// category stores NULL.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount int64, date time.Time, category string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Amount:   amount,
		Type:     txType,
		Merchant: fmt.Sprintf("Merchant %d", nextID()),
		Date:     date,
	}
	if category != "" {
		tx.Category = StrPtr(category)
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestDebit creates a categorized debit.
func CreateTestDebit(t *testing.T, db *gorm.DB, userID string, amount int64, date time.Time, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, userID, models.TransactionTypeDebit, amount, date, category)
}

// CreateTestCredit creates an uncategorized credit.
func CreateTestCredit(t *testing.T, db *gorm.DB, userID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, userID, models.TransactionTypeCredit, amount, date, "")
}

// CreateTestInsight creates an insight with an explicit creation time.
func CreateTestInsight(t *testing.T, db *gorm.DB, userID string, createdAt time.Time) *models.Insight {
	t.Helper()

	n := nextID()
	insight := &models.Insight{
		Base:    models.Base{CreatedAt: createdAt},
		UserID:  userID,
		Title:   fmt.Sprintf("Insight %d", n),
		Message: fmt.Sprintf("Message %d", n),
		Type:    models.InsightTypeTrend,
	}
	if err := db.Create(insight).Error; err != nil {
		t.Fatalf("failed to create test insight: %v", err)
	}
	return insight
}
