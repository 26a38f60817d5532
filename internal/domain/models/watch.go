package models

import "time"

// Watch is a recruiter's saved subscription: which offer (or offer type)
// to poll for new candidatures, with optional filters.
type Watch struct {
	ID              int
	ChatID          int64
	OfferType       OfferType
	OfferID         string
	Search          string
	Status          string
	Priority        string
	Localisation    string
	LastCheckedTime time.Time
	CreatedAt       time.Time
}

func NewWatch(chatID int64, offerType OfferType, offerID string, filters Filters) *Watch {
	return &Watch{
		ChatID:       chatID,
		OfferType:    offerType,
		OfferID:      offerID,
		Search:       filters.Search,
		Status:       filters.Status,
		Priority:     filters.Priority,
		Localisation: filters.Localisation,
	}
}

func (w *Watch) Filters() Filters {
	f := DefaultFilters()
	f.Search = w.Search
	f.Status = w.Status
	f.Priority = w.Priority
	f.Localisation = w.Localisation
	return f
}
