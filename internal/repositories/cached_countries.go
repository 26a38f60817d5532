package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type countryRepository interface {
	GetIdByName(ctx context.Context, name string) (string, error)
	GetRegionIdByName(ctx context.Context, name string) (string, error)
}

type CachedCountries struct {
	repo  countryRepository
	cache *gocache.Cache
}

func NewCachedCountries(repo countryRepository) *CachedCountries {
	return &CachedCountries{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c CachedCountries) GetIdByName(ctx context.Context, name string) (string, error) {
	if value, found := c.cache.Get("country:" + name); found {
		return value.(string), nil
	}

	id, err := c.repo.GetIdByName(ctx, name)
	if id != "" {
		if err = c.cache.Add("country:"+name, id, gocache.DefaultExpiration); err != nil {
			return id, err
		}
	}

	return id, err
}

func (c CachedCountries) GetRegionIdByName(ctx context.Context, name string) (string, error) {
	if value, found := c.cache.Get("region:" + name); found {
		return value.(string), nil
	}

	id, err := c.repo.GetRegionIdByName(ctx, name)
	if id != "" {
		if err = c.cache.Add("region:"+name, id, gocache.DefaultExpiration); err != nil {
			return id, err
		}
	}

	return id, err
}
