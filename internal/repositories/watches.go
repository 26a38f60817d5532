package repositories

import (
	"context"
	"time"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"gorm.io/gorm"
)

type Watches struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *Watches {
	return &Watches{db: db}
}

func (repo *Watches) Add(ctx context.Context, watch models.Watch) error {
	return repo.db.WithContext(ctx).Create(&watch).Error
}

func (repo *Watches) GetByChat(ctx context.Context, chatID int64) ([]models.Watch, error) {

	var watches []models.Watch
	if err := repo.db.WithContext(ctx).Find(&watches, "chat_id = ?", chatID).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (repo *Watches) GetByID(ctx context.Context, ID int64) (*models.Watch, error) {

	var watch models.Watch
	if err := repo.db.WithContext(ctx).Find(&watch, "id = ?", ID).Error; err != nil {
		return nil, err
	}
	return &watch, nil
}

func (repo *Watches) GetCountByChat(ctx context.Context, chatID int64) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.Watch{}).Where("chat_id = ?", chatID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Watches) Update(ctx context.Context, watch models.Watch) error {
	return repo.db.WithContext(ctx).Model(&models.Watch{}).Where("id = ?", watch.ID).Updates(watch).Error
}

func (repo *Watches) UpdateLastChecked(ctx context.Context, id int, checkedAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&models.Watch{}).Where("id = ?", id).
		Updates(map[string]any{
			"last_checked_time": checkedAt.UTC(),
		}).Error
}

func (repo *Watches) Get(ctx context.Context, limit int, offset int) ([]models.Watch, error) {

	var watches []models.Watch
	if err := repo.db.WithContext(ctx).
		Limit(limit).
		Offset(offset).
		Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (repo *Watches) Remove(ctx context.Context, watchID int) error {
	err := repo.db.WithContext(ctx).Delete(&models.Watch{ID: watchID}).Error
	return err
}
