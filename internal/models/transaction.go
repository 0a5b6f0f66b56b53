package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType is the cash-flow direction of a ledger row.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid reports whether t is a known direction.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction is a ledger row. Amount is a positive magnitude in cents;
// Type decides the sign. Date carries no time component and is stored as
// midnight UTC.
type Transaction struct {
	Base
	UserID         string          `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"user_id"`
	Amount         int64           `gorm:"type:bigint;not null" json:"amount"`
	Type           TransactionType `gorm:"column:transaction_type;size:10;not null" json:"transaction_type"`
	Merchant       string          `gorm:"size:100" json:"merchant"`
	Date           time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date" json:"date"`
	Category       *string         `gorm:"size:50" json:"category,omitempty"`
	IsSubscription bool            `gorm:"default:false" json:"is_subscription"`
	Description    *string         `gorm:"type:text" json:"description,omitempty"`
}

// BeforeSave truncates Date to its calendar day in UTC.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Date = CivilDate(t.Date)
	return nil
}

// CivilDate returns midnight UTC of the calendar day of ts, read in ts's own
// location.
func CivilDate(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
