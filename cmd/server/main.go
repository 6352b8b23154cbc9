// cmd/server/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/controller"
	"github.com/unclebandit/outreach-backend/internal/db"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/logging"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

func main() {
	cfg, loaded := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !loaded {
		logger.Warn().Msg("⚠️ No .env file found, relying on OS environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contactRepo, campaignRepo, closeDB := openStores(ctx, cfg, logger)
	defer closeDB()

	q, closeQueue := openQueue(cfg, logger)
	defer closeQueue()

	campaignService := &service.CampaignService{
		ContactRepo:  contactRepo,
		CampaignRepo: campaignRepo,
		Source:       service.StubContactSource{},
		Scheduler:    service.NewScheduler(service.SystemClock, service.RandomJitter),
		Queue:        q,
		Topic:        cfg.ScheduleTopic,
		Logger:       logger.With().Str("component", "campaign_service").Logger(),
	}

	campaignController := controller.NewCampaignController(campaignService, logger)
	contactController := &controller.ContactController{CampaignService: campaignService, Logger: logger}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(campaignController, contactController, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error().Err(err).Str("addr", srv.Addr).Msg("listen failed")
		return
	}

	logger.Info().Str("addr", srv.Addr).Msg("🚀 Server running")
	if err := serve(ctx, srv, ln, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

// openStores uses Postgres when DATABASE_URL is set and in-memory stores otherwise.
func openStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.ContactRepositoryInterface, repository.CampaignRepositoryInterface, func()) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("DATABASE_URL not set, using in-memory stores")
		return repository.NewContactDirectory(), repository.NewCampaignStore(time.Now), func() {}
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	if err := db.EnsureSchema(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	logger.Info().Msg("✅ Connected to database")

	return &repository.ContactRepository{DB: conn}, &repository.CampaignRepository{DB: conn}, func() { conn.Close() }
}

// openQueue uses RabbitMQ when AMQP_URL is set. The in-memory queue gets a
// local subscriber so scheduled campaigns are still logged.
func openQueue(cfg *config.Config, logger zerolog.Logger) (queue.Queue, func()) {
	if cfg.AMQPURL == "" {
		q := queue.NewInMemoryQueue(logger.With().Str("component", "queue").Logger())
		q.Subscribe(cfg.ScheduleTopic, queue.LogCampaignScheduled(logger))
		return q, q.Wait
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, logger.With().Str("component", "amqp").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("queue unavailable")
	}
	return q, func() { q.Close() }
}
