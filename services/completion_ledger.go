package services

import (
	"context"
	"time"

	"pixel-hunt-system/models"

	"gorm.io/gorm"
)

// CompletionLedger records completed hunts in the database.
type CompletionLedger struct {
	DB *gorm.DB
}

func NewCompletionLedger(db *gorm.DB) *CompletionLedger {
	return &CompletionLedger{DB: db}
}

func (l *CompletionLedger) Record(ctx context.Context, completion *models.HuntCompletion) error {
	return l.DB.WithContext(ctx).Create(completion).Error
}

// Recent returns a player's completions in the last N days, newest first.
func (l *CompletionLedger) Recent(ctx context.Context, playerID string, days int) ([]models.HuntCompletion, error) {
	var completions []models.HuntCompletion
	since := time.Now().AddDate(0, 0, -days)
	err := l.DB.WithContext(ctx).
		Where("external_user_id = ? AND completed_at >= ?", playerID, since).
		Order("completed_at DESC").
		Find(&completions).Error
	return completions, err
}
