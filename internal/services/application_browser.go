package services

import (
	"sync"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/metrics"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/pagination"
	"github.com/pkg/errors"
)

// ErrStaleResponse marks a reload that finished after a newer one was
// requested; its result must not be displayed.
var ErrStaleResponse = errors.New("a newer reload was requested")

type applicationClient interface {
	GetApplications(offerType models.OfferType, params marketplace.ListParameters) (marketplace.ApplicationPage, error)
	GetApplicationsByOffer(offerType models.OfferType, offerID string, params marketplace.ListParameters) (marketplace.ApplicationPage, error)
	AcceptApplication(applicationID string, notes string) error
	RejectApplication(applicationID string, notes string) error
	ShortlistApplication(applicationID string, notes string) error
	ScheduleInterview(applicationID string, notes string) error
	HoldApplication(applicationID string, notes string) error
	MarkApplicationViewed(applicationID string, notes string) error
	HireApplication(applicationID string, notes string) error
}

type TransitionAction string

const (
	ActionAccept    TransitionAction = "accept"
	ActionReject    TransitionAction = "reject"
	ActionShortlist TransitionAction = "shortlist"
	ActionInterview TransitionAction = "interview"
	ActionHold      TransitionAction = "hold"
	ActionViewed    TransitionAction = "viewed"
	ActionHire      TransitionAction = "hire"
)

// BrowserView is what a reload hands back to the rendering side: one
// normalized page plus the state it was computed from.
type BrowserView struct {
	Applications []models.Application
	Pagination   pagination.State
	Filters      models.Filters
}

// ApplicationBrowser owns the list-page state for one chat: filters,
// pagination and the request token that serializes overlapping reloads.
// Every mutation resets to page 1 because the result set changes shape.
type ApplicationBrowser struct {
	client    applicationClient
	offerType models.OfferType
	offerID   string

	mu          sync.Mutex
	filters     models.Filters
	currentPage int
	pageSize    int
	latestToken int64
}

func NewApplicationBrowser(client applicationClient, offerType models.OfferType, offerID string) *ApplicationBrowser {
	return &ApplicationBrowser{
		client:      client,
		offerType:   offerType,
		offerID:     offerID,
		filters:     models.DefaultFilters(),
		currentPage: 1,
		pageSize:    pagination.DefaultPageSize,
	}
}

func (b *ApplicationBrowser) OfferType() models.OfferType {
	return b.offerType
}

func (b *ApplicationBrowser) Filters() models.Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// SetFilter updates a single key. Dropdown-style filters take effect
// immediately, so the page always resets to 1.
func (b *ApplicationBrowser) SetFilter(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.filters.Set(key, value); err != nil {
		return err
	}
	b.currentPage = 1
	return nil
}

// Search commits the free-text search field. Unlike the other filters it
// only fires on explicit submit.
func (b *ApplicationBrowser) Search(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filters.Search = text
	b.currentPage = 1
}

func (b *ApplicationBrowser) ResetFilters() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filters.Reset()
	b.currentPage = 1
}

func (b *ApplicationBrowser) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if page < 1 {
		page = 1
	}
	b.currentPage = page
}

func (b *ApplicationBrowser) SetPageSize(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pageSize = pagination.NearestPageSize(size)
	b.currentPage = 1
}

// Reload fetches the current page. When reloads overlap, only the one
// holding the newest token may publish its result; earlier ones come
// back as ErrStaleResponse so a slow response never overwrites a newer
// page.
func (b *ApplicationBrowser) Reload() (BrowserView, error) {

	b.mu.Lock()
	b.latestToken++
	token := b.latestToken
	filters := b.filters
	page, pageSize := b.currentPage, b.pageSize
	b.mu.Unlock()

	params := marketplace.ListParametersFrom(filters, page, pageSize)

	var result marketplace.ApplicationPage
	var err error
	if b.offerID != "" {
		result, err = b.client.GetApplicationsByOffer(b.offerType, b.offerID, params)
	} else {
		result, err = b.client.GetApplications(b.offerType, params)
	}
	if err != nil {
		return BrowserView{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.latestToken {
		return BrowserView{}, ErrStaleResponse
	}

	state := pagination.NewState(result.TotalCount, pageSize, page)
	b.currentPage = state.CurrentPage

	return BrowserView{
		Applications: result.Applications,
		Pagination:   state,
		Filters:      filters,
	}, nil
}

// ApplyTransition issues exactly one status-update request and then
// re-fetches the current page; the list is never mutated optimistically.
func (b *ApplicationBrowser) ApplyTransition(action TransitionAction, applicationID string, notes string) (BrowserView, error) {

	var err error
	switch action {
	case ActionAccept:
		err = b.client.AcceptApplication(applicationID, notes)
	case ActionReject:
		err = b.client.RejectApplication(applicationID, notes)
	case ActionShortlist:
		err = b.client.ShortlistApplication(applicationID, notes)
	case ActionInterview:
		err = b.client.ScheduleInterview(applicationID, notes)
	case ActionHold:
		err = b.client.HoldApplication(applicationID, notes)
	case ActionViewed:
		err = b.client.MarkApplicationViewed(applicationID, notes)
	case ActionHire:
		err = b.client.HireApplication(applicationID, notes)
	default:
		return BrowserView{}, errors.Errorf("unknown transition action: %v", action)
	}

	if err != nil {
		return BrowserView{}, err
	}

	metrics.StatusTransitionsCounter.WithLabelValues(string(action)).Inc()
	return b.Reload()
}
