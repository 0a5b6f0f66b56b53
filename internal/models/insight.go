package models

// InsightType classifies an insight card.
type InsightType string

const (
	InsightTypeTrend       InsightType = "trend"
	InsightTypeAlert       InsightType = "alert"
	InsightTypeAchievement InsightType = "achievement"
)

// InsightTypes lists the accepted insight types.
var InsightTypes = []InsightType{InsightTypeTrend, InsightTypeAlert, InsightTypeAchievement}

// IsValid reports whether t is one of InsightTypes.
func (t InsightType) IsValid() bool {
	switch t {
	case InsightTypeTrend, InsightTypeAlert, InsightTypeAchievement:
		return true
	}
	return false
}

// Insight is a persisted coaching card. It is only ever created by the
// generation pipeline and only ever mutated by marking it read.
type Insight struct {
	Base
	UserID  string      `gorm:"type:uuid;not null;index:idx_insights_user_created" json:"user_id"`
	Title   string      `gorm:"size:200;not null" json:"title"`
	Message string      `gorm:"type:text;not null" json:"message"`
	Type    InsightType `gorm:"size:20;not null" json:"type"`
	IsRead  bool        `gorm:"not null;default:false" json:"is_read"`
}
