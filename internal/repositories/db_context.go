package repositories

import (
	"fmt"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Country{})
	if err != nil {
		return fmt.Errorf("failed to migrate Country entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Region{})
	if err != nil {
		return fmt.Errorf("failed to migrate Region entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Watch{})
	if err != nil {
		return fmt.Errorf("failed to migrate Watch entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.NotifiedApplication{})
	if err != nil {
		return fmt.Errorf("failed to migrate NotifiedApplication entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.ArbitraryData{})
	if err != nil {
		return fmt.Errorf("failed to migrate ArbitraryData entity: %w", err)
	}

	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_chat_application_id " +
		"ON notified_applications (chat_id, application_id);").Error; err != nil {
		return fmt.Errorf("failed to create notified application index: %w", err)
	}

	return nil
}

// PopulateCountries fills the reference tables from the backend when they
// are empty, so watch inputs can resolve localisation names offline.
func (c *DbContext) PopulateCountries(client *marketplace.Client) error {

	var countriesCount int64
	if err := c.DB.Model(entities.Country{}).Count(&countriesCount).Error; err != nil {
		return fmt.Errorf("failed to count countries: %w", err)
	}
	if countriesCount > 0 {
		return nil
	}

	apiCountries, err := client.GetCountries()
	if err != nil {
		return fmt.Errorf("failed to get countries from client: %w", err)
	}

	var countries []entities.Country
	var regions []entities.Region

	for _, apiCountry := range apiCountries {
		countries = append(countries, entities.NewCountry(apiCountry.ID.String(), apiCountry.Name))

		apiRegions, err := client.GetRegions(apiCountry.ID.String())
		if err != nil {
			return fmt.Errorf("failed to get regions from client: %w", err)
		}
		for _, apiRegion := range apiRegions {
			regions = append(regions, entities.NewRegion(apiRegion.ID.String(), apiCountry.ID.String(), apiRegion.Name))
		}
	}

	if len(countries) == 0 {
		return nil
	}

	if err = c.DB.Create(countries).Error; err != nil {
		return fmt.Errorf("failed to create countries in the database: %w", err)
	}
	if len(regions) > 0 {
		if err = c.DB.Create(regions).Error; err != nil {
			return fmt.Errorf("failed to create regions in the database: %w", err)
		}
	}
	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
