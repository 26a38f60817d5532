package repositories

import (
	"context"
	"errors"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/entities"
	"gorm.io/gorm"
)

type Countries struct {
	db *gorm.DB
}

func NewCountriesRepository(db *gorm.DB) *Countries {
	return &Countries{db: db}
}

func (repo *Countries) GetIdByName(ctx context.Context, name string) (string, error) {

	var country entities.Country
	name = entities.NormalizeName(name)
	if err := repo.db.WithContext(ctx).First(&country, "normalized_name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return country.ID, nil
}

func (repo *Countries) GetRegionIdByName(ctx context.Context, name string) (string, error) {

	var region entities.Region
	name = entities.NormalizeName(name)
	if err := repo.db.WithContext(ctx).First(&region, "normalized_name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return region.ID, nil
}
