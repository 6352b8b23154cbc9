package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/logging"
	"github.com/unclebandit/outreach-backend/internal/queue"
)

// Consumes campaign_scheduled events from RabbitMQ and logs each schedule.
func main() {
	cfg, _ := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.AMQPURL == "" {
		logger.Fatal().Msg("AMQP_URL is required")
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("queue unavailable")
	}
	defer q.Close()

	if err := q.Subscribe(cfg.ScheduleTopic, queue.LogCampaignScheduled(logger)); err != nil {
		logger.Fatal().Err(err).Msg("failed to subscribe")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("topic", cfg.ScheduleTopic).Msg("Worker running, waiting for messages...")
	select {
	case <-ctx.Done():
	case amqpErr := <-q.NotifyClose():
		if amqpErr != nil {
			logger.Error().Int("code", amqpErr.Code).Str("reason", amqpErr.Reason).Msg("broker connection closed")
		}
	}
}
