package services

import (
	"context"
	"sync"
	"time"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/events"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/metrics"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

type watchRepository interface {
	Get(ctx context.Context, limit int, offset int) ([]models.Watch, error)
	UpdateLastChecked(ctx context.Context, watchID int, checkedAt time.Time) error
}

type notifiedRepository interface {
	IsNotified(ctx context.Context, chatID int64, applicationID string) (bool, error)
	RecordAsNotified(ctx context.Context, chatID int64, applicationID string) error
}

type listClient interface {
	GetApplications(offerType models.OfferType, params marketplace.ListParameters) (marketplace.ApplicationPage, error)
	GetApplicationsByOffer(offerType models.OfferType, offerID string, params marketplace.ListParameters) (marketplace.ApplicationPage, error)
	AnalyzeCompatibility(applicationID string, offerID string, offerType models.OfferType) (models.CompatibilityScore, error)
}

// ApplicationsWatcher periodically walks every saved watch, pages through
// its candidatures newest-first and publishes the ones the recruiter has
// not been notified about yet.
type ApplicationsWatcher struct {
	bus             EventBus.Bus
	watches         watchRepository
	notified        notifiedRepository
	client          listClient
	pollInterval    time.Duration
	analyzeUnscored bool
	watchContexts   sync.Map
}

func NewApplicationsWatcher(bus EventBus.Bus, client listClient, watchRepo watchRepository,
	notifiedRepo notifiedRepository, pollInterval time.Duration) (*ApplicationsWatcher, error) {

	w := &ApplicationsWatcher{
		bus:          bus,
		watches:      watchRepo,
		notified:     notifiedRepo,
		client:       client,
		pollInterval: pollInterval,
	}
	err := bus.Subscribe(events.WatchDeletedTopic, w.onWatchDeletedEvent)
	if err != nil {
		return nil, err
	}

	return w, nil
}

// SetAnalyzeUnscored makes the watcher request a backend AI analysis for
// candidatures that arrive without a compatibility score.
func (w *ApplicationsWatcher) SetAnalyzeUnscored(analyze bool) {
	w.analyzeUnscored = analyze
}

func (w *ApplicationsWatcher) Run() {
	for {
		startTime := time.Now()
		log.Infof("running applications poll at %v", time.Now())

		w.runPoll()

		executionTime := time.Since(startTime)
		metrics.PollDuration.Observe(executionTime.Seconds())
		log.Infof("applications poll ended after %v", executionTime)

		var sleepTime time.Duration
		if executionTime <= w.pollInterval {
			sleepTime = w.pollInterval - executionTime
		} else {
			w.pollInterval = executionTime + time.Minute
			log.Infof("poll interval exceeded to %v", w.pollInterval)
		}

		log.Infof("next poll time is %v", time.Now().Add(sleepTime))
		time.Sleep(sleepTime)
	}
}

func (w *ApplicationsWatcher) runPoll() {

	var batchSize, handledTotal = 20, 0

	for offset := 0; ; offset += batchSize {

		watches, err := w.watches.Get(context.Background(), batchSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get watches: %v", err)
			break
		}
		if len(watches) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, watch := range watches {
			w.runPollForWatch(&wg, watch)
		}

		wg.Wait()
		handledTotal += len(watches)
	}

	log.Infof("handled %v recruiter watches", handledTotal)
}

func (w *ApplicationsWatcher) runPollForWatch(wg *sync.WaitGroup, watch models.Watch) {

	watchCtx, cancel := context.WithCancel(context.Background())
	w.watchContexts.Store(watch.ID, cancel)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer w.watchContexts.Delete(watch.ID)
		w.pollApplicationsForWatch(watchCtx, watch)
	}()
}

func (w *ApplicationsWatcher) pollApplicationsForWatch(ctx context.Context, watch models.Watch) {

	var pageSize, fetchedTotal = 20, 0
	var newestCreatedAt time.Time

	filters := watch.Filters()

pages:
	for page := 1; ; page++ {

		select {
		case <-ctx.Done():
			log.Infof("poll canceled for watch ID %v", watch.ID)
			return
		default:
		}

		result, err := w.getPage(watch, filters, page, pageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).Errorf("failed to get applications: %v", err)
			break
		}
		fetchedTotal += len(result.Applications)

		if len(result.Applications) == 0 {
			break
		}

		for _, application := range result.Applications {

			select {
			case <-ctx.Done():
				return
			default:
			}

			// newest-first ordering: once we reach candidatures already
			// seen on a previous poll, the rest of the pages are older
			if !application.CreatedAt.IsZero() && !application.CreatedAt.After(watch.LastCheckedTime) {
				break pages
			}

			if application.CreatedAt.After(newestCreatedAt) {
				newestCreatedAt = application.CreatedAt
			}

			w.handleApplication(ctx, watch, application)
		}

		if page*pageSize >= result.TotalCount {
			break
		}
	}

	if !newestCreatedAt.IsZero() {
		err := w.watches.UpdateLastChecked(context.Background(), watch.ID, newestCreatedAt)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update last checked time: %v", err)
		}
	}

	log.Infof("fetched total %v applications for watch with id %v", fetchedTotal, watch.ID)
}

func (w *ApplicationsWatcher) getPage(watch models.Watch, filters models.Filters, page, pageSize int) (marketplace.ApplicationPage, error) {

	params := marketplace.ListParametersFrom(filters, page, pageSize)

	start := time.Now()
	defer func() {
		metrics.PollStepDuration.WithLabelValues("list_retrieval").Observe(time.Since(start).Seconds())
	}()

	if watch.OfferID != "" {
		return w.client.GetApplicationsByOffer(watch.OfferType, watch.OfferID, params)
	}
	return w.client.GetApplications(watch.OfferType, params)
}

func (w *ApplicationsWatcher) handleApplication(ctx context.Context, watch models.Watch, application models.Application) {

	wasNotified, err := w.notified.IsNotified(ctx, watch.ChatID, application.ID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to check if application was notified: %v", err)
		return
	}

	if wasNotified {
		return
	}

	if w.analyzeUnscored && application.Compatibility.Total == 0 {
		start := time.Now()
		score, err := w.client.AnalyzeCompatibility(application.ID, application.OfferID, watch.OfferType)
		metrics.PollStepDuration.WithLabelValues("ai_analysis").Observe(time.Since(start).Seconds())

		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).
				Errorf("failed to analyze compatibility for application %v: %v", application.ID, err)
		} else {
			application.Compatibility = score
		}
	}

	if err = w.notified.RecordAsNotified(ctx, watch.ChatID, application.ID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record application as notified: %v", err)
		return
	}

	metrics.NotifiedApplicationsCounter.Inc()
	w.bus.Publish(events.ApplicationFoundTopic, events.ApplicationFound{Watch: watch, Application: application})
}

func (w *ApplicationsWatcher) onWatchDeletedEvent(event events.WatchDeleted) {
	if cancel, ok := w.watchContexts.Load(event.WatchID); ok {
		cancel.(context.CancelFunc)()
		w.watchContexts.Delete(event.WatchID)
	}
}
