package models

// DefaultFinancialGoal is used in place of a missing goal statement.
const DefaultFinancialGoal = "No specific goals set."

// User represents the owner of a ledger and of generated insights.
type User struct {
	Base
	Username       string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FinancialGoals *string       `gorm:"type:text" json:"financial_goals,omitempty"`
	Transactions   []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Insights       []Insight     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"insights,omitempty"`
}

// GoalText returns the user's goal statement, or DefaultFinancialGoal when
// none is stored.
func (u *User) GoalText() string {
	if u.FinancialGoals == nil || *u.FinancialGoals == "" {
		return DefaultFinancialGoal
	}
	return *u.FinancialGoals
}
