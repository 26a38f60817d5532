package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/entities"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (a Applications) IsNotified(ctx context.Context, chatID int64, applicationID string) (bool, error) {
	var notified entities.NotifiedApplication
	err := a.db.WithContext(ctx).
		Where("chat_id = ? AND application_id = ?", chatID, applicationID).
		First(&notified).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = a.db.WithContext(ctx).
		Model(&entities.NotifiedApplication{}).
		Where("id = ?", notified.ID).
		Update("last_checked_at", time.Now()).Error
	return true, err
}

func (a Applications) RecordAsNotified(ctx context.Context, chatID int64, applicationID string) error {
	return a.db.WithContext(ctx).Create(&entities.NotifiedApplication{
		ChatID:        chatID,
		ApplicationID: applicationID,
		LastCheckedAt: time.Now(),
	}).Error
}

func (a Applications) RemoveOld(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := a.db.WithContext(ctx).Delete(&entities.NotifiedApplication{}, "last_checked_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
