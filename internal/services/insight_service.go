package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/models"
	"fincoach/internal/pagination"
	"fincoach/internal/uuid"
)

// insightService is the insight store.
type insightService struct {
	db *gorm.DB
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db}
}

// Persist creates one unread insight per draft inside a single transaction.
// Either every draft is stored or none is.
func (s *insightService) Persist(ctx context.Context, userID string, drafts []InsightDraft) ([]models.Insight, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID is required")
	}
	if len(drafts) == 0 {
		return []models.Insight{}, nil
	}

	insights := make([]models.Insight, 0, len(drafts))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range drafts {
			insight := models.Insight{
				UserID:  userID,
				Title:   d.Title,
				Message: d.Message,
				Type:    d.Type,
			}
			if err := tx.Create(&insight).Error; err != nil {
				return err
			}
			insights = append(insights, insight)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	return insights, nil
}

// ListInsights returns up to limit insights for the user, newest first.
// A zero limit means pagination.DefaultLimit; larger limits are capped at
// pagination.MaxLimit.
func (s *insightService) ListInsights(ctx context.Context, userID string, limit int) ([]models.Insight, error) {
	req := pagination.LimitRequest{Limit: limit}
	if userID == "" || !req.Valid() {
		return nil, apperrors.ErrInvalidInput
	}
	req.Defaults()

	var insights []models.Insight
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scopes(pagination.Limit(req)).
		Find(&insights).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return insights, nil
}

// MarkRead flips an insight to read. Marking an already read insight
// succeeds without writing.
func (s *insightService) MarkRead(ctx context.Context, insightID string) error {
	if !uuid.IsValid(insightID) {
		return apperrors.ErrInsightNotFound
	}

	db := s.db.WithContext(ctx)
	var insight models.Insight
	if err := db.First(&insight, "id = ?", insightID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInsightNotFound
		}
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if insight.IsRead {
		return nil
	}

	if err := db.Model(&insight).Update("is_read", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}
