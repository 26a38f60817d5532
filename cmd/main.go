package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/bot"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/config"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/metrics"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/repositories"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/services"
)

func runWatcher(cfg *config.Config, client *marketplace.Client, watches *repositories.Watches,
	notified *repositories.Applications, bus EventBus.Bus) {

	watcher, err := services.NewApplicationsWatcher(bus, client, watches, notified, cfg.Bot.PollInterval)
	if err != nil {
		log.Fatalf("can't create watcher: %v", err)
	}
	watcher.SetAnalyzeUnscored(cfg.Bot.AnalyzeUnscored)
	go watcher.Run()
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	client := marketplace.NewClient(cfg.Api.BaseURL)
	client.SetToken(cfg.Api.Token)
	client.SetRateLimit(cfg.Api.MaxRequestsPerSecond)

	if err = dbContext.PopulateCountries(client); err != nil {
		log.Warnf("can't populate countries: %v", err)
	}

	watches := repositories.NewWatchRepository(dbContext.DB)
	countries := repositories.NewCachedCountries(repositories.NewCountriesRepository(dbContext.DB))
	notified := repositories.NewApplicationsRepository(dbContext.DB)
	data := repositories.NewDataRepository(dbContext.DB)

	bus := EventBus.New()

	tgbot, err := bot.NewBot(cfg.Bot.Token, client, bus, bot.Repositories{
		Watch:   watches,
		Country: countries,
		Data:    data,
	})
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	go tgbot.Run()

	cleaner, err := services.NewNotifiedCleaner(notified, cfg.Bot.NotifiedExpirationInDays)
	if err != nil {
		log.Fatalf("can't create cleaner: %v", err)
	}
	defer cleaner.Stop()

	runWatcher(cfg, client, watches, notified, bus)

	<-ctx.Done()

	log.Info("Shutting down services...")
	tgbot.Stop()
	log.Info("Services stopped.")
}
