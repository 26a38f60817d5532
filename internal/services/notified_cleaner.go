package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type notifiedCleanupRepository interface {
	RemoveOld(ctx context.Context, expirationTime time.Time) (int64, error)
}

// NotifiedCleaner drops old rows from the notified-application ledger so
// the local database does not grow forever.
type NotifiedCleaner struct {
	notified             notifiedCleanupRepository
	cron                 *cron.Cron
	expirationTimeInDays int
}

func NewNotifiedCleaner(notified notifiedCleanupRepository, expirationInDays int) (*NotifiedCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	nc := &NotifiedCleaner{
		notified:             notified,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
	}

	_, err := nc.cron.AddFunc("0 0 * * *", nc.cleanOldNotified)
	if err != nil {
		return nil, err
	}

	nc.cron.Start()
	log.Infof("notified applications cleaner started, expiration in days: %d", nc.expirationTimeInDays)
	return nc, nil
}

func (nc *NotifiedCleaner) Stop() {
	nc.cron.Stop()
}

func (nc *NotifiedCleaner) cleanOldNotified() {
	expirationTime := time.Now().Add(-time.Duration(nc.expirationTimeInDays) * 24 * time.Hour)
	rowsAffected, err := nc.notified.RemoveOld(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean old notified applications: %v", err)
	} else {
		log.Infof("Old notified applications were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
