package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/events"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

type watcherClientStub struct {
	pages     []marketplace.ApplicationPage
	listCalls int
	analyzed  []string
	score     models.CompatibilityScore
}

func (s *watcherClientStub) GetApplications(_ models.OfferType, params marketplace.ListParameters) (marketplace.ApplicationPage, error) {
	s.listCalls++
	if params.Page > len(s.pages) {
		return marketplace.ApplicationPage{}, nil
	}
	return s.pages[params.Page-1], nil
}

func (s *watcherClientStub) GetApplicationsByOffer(offerType models.OfferType, _ string, params marketplace.ListParameters) (marketplace.ApplicationPage, error) {
	return s.GetApplications(offerType, params)
}

func (s *watcherClientStub) AnalyzeCompatibility(applicationID string, _ string, _ models.OfferType) (models.CompatibilityScore, error) {
	s.analyzed = append(s.analyzed, applicationID)
	return s.score, nil
}

type watchRepoStub struct {
	lastChecked map[int]time.Time
}

func (s *watchRepoStub) Get(_ context.Context, _ int, _ int) ([]models.Watch, error) {
	return nil, nil
}

func (s *watchRepoStub) UpdateLastChecked(_ context.Context, watchID int, checkedAt time.Time) error {
	if s.lastChecked == nil {
		s.lastChecked = map[int]time.Time{}
	}
	s.lastChecked[watchID] = checkedAt
	return nil
}

type notifiedRepoStub struct {
	notified map[string]bool
}

func key(chatID int64, applicationID string) string {
	return fmt.Sprintf("%v/%v", chatID, applicationID)
}

func (s *notifiedRepoStub) IsNotified(_ context.Context, chatID int64, applicationID string) (bool, error) {
	return s.notified[key(chatID, applicationID)], nil
}

func (s *notifiedRepoStub) RecordAsNotified(_ context.Context, chatID int64, applicationID string) error {
	if s.notified == nil {
		s.notified = map[string]bool{}
	}
	s.notified[key(chatID, applicationID)] = true
	return nil
}

func collectFound(bus EventBus.Bus) *[]events.ApplicationFound {
	var found []events.ApplicationFound
	_ = bus.Subscribe(events.ApplicationFoundTopic, func(event events.ApplicationFound) {
		found = append(found, event)
	})
	return &found
}

func Test_Watcher_NewApplications_ShouldBeNotifiedOnce(t *testing.T) {

	assert := assert.New(t)

	now := time.Now()
	client := &watcherClientStub{pages: []marketplace.ApplicationPage{{
		Applications: []models.Application{
			{ID: "2", DisplayName: "Aline Dossou", CreatedAt: now},
			{ID: "1", DisplayName: "Kokou A.", CreatedAt: now.Add(-time.Minute)},
		},
		TotalCount: 2,
	}}}

	bus := EventBus.New()
	found := collectFound(bus)
	watchRepo := &watchRepoStub{}

	watcher, err := NewApplicationsWatcher(bus, client, watchRepo, &notifiedRepoStub{}, time.Hour)
	assert.NoError(err)

	watch := models.Watch{ID: 1, ChatID: 10, OfferType: models.OfferJob}
	watcher.pollApplicationsForWatch(context.Background(), watch)

	assert.Len(*found, 2)
	assert.Equal("2", (*found)[0].Application.ID)
	assert.Equal(now, watchRepo.lastChecked[watch.ID])

	// a second poll over the same result set notifies nothing new
	watcher.pollApplicationsForWatch(context.Background(), watch)
	assert.Len(*found, 2)
}

func Test_Watcher_AlreadySeenApplications_ShouldStopPaging(t *testing.T) {

	assert := assert.New(t)

	lastChecked := time.Now()
	client := &watcherClientStub{pages: []marketplace.ApplicationPage{
		{
			Applications: []models.Application{{ID: "1", CreatedAt: lastChecked.Add(-time.Hour)}},
			TotalCount:   40,
		},
		{
			Applications: []models.Application{{ID: "0", CreatedAt: lastChecked.Add(-2 * time.Hour)}},
			TotalCount:   40,
		},
	}}

	bus := EventBus.New()
	found := collectFound(bus)

	watcher, err := NewApplicationsWatcher(bus, client, &watchRepoStub{}, &notifiedRepoStub{}, time.Hour)
	assert.NoError(err)

	watch := models.Watch{ID: 1, ChatID: 10, OfferType: models.OfferJob, LastCheckedTime: lastChecked}
	watcher.pollApplicationsForWatch(context.Background(), watch)

	assert.Empty(*found)
	assert.Equal(1, client.listCalls)
}

func Test_Watcher_UnscoredApplication_ShouldRequestAnalysis(t *testing.T) {

	assert := assert.New(t)

	client := &watcherClientStub{
		pages: []marketplace.ApplicationPage{{
			Applications: []models.Application{{ID: "7", OfferID: "42", CreatedAt: time.Now()}},
			TotalCount:   1,
		}},
		score: models.CompatibilityScore{Total: 66},
	}

	bus := EventBus.New()
	found := collectFound(bus)

	watcher, err := NewApplicationsWatcher(bus, client, &watchRepoStub{}, &notifiedRepoStub{}, time.Hour)
	assert.NoError(err)
	watcher.SetAnalyzeUnscored(true)

	watch := models.Watch{ID: 1, ChatID: 10, OfferType: models.OfferJob}
	watcher.pollApplicationsForWatch(context.Background(), watch)

	assert.Equal([]string{"7"}, client.analyzed)
	assert.Len(*found, 1)
	assert.Equal(66.0, (*found)[0].Application.Compatibility.Total)
}

func Test_Watcher_CanceledContext_ShouldSkipPoll(t *testing.T) {

	assert := assert.New(t)

	client := &watcherClientStub{pages: []marketplace.ApplicationPage{{
		Applications: []models.Application{{ID: "1", CreatedAt: time.Now()}},
		TotalCount:   1,
	}}}

	bus := EventBus.New()
	found := collectFound(bus)

	watcher, err := NewApplicationsWatcher(bus, client, &watchRepoStub{}, &notifiedRepoStub{}, time.Hour)
	assert.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watcher.pollApplicationsForWatch(ctx, models.Watch{ID: 1, ChatID: 10, OfferType: models.OfferJob})

	assert.Empty(*found)
	assert.Zero(client.listCalls)
}
