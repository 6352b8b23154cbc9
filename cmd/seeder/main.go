// cmd/seeder/main.go
package main

import (
	"context"
	"os"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/db"
	"github.com/unclebandit/outreach-backend/internal/logging"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

// Seeds the Postgres contact directory from the contact sync stub.
func main() {
	cfg, _ := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer conn.Close()

	if err := db.EnsureSchema(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	svc := &service.CampaignService{
		ContactRepo: &repository.ContactRepository{DB: conn},
		Source:      service.StubContactSource{},
		Logger:      logger,
	}
	contacts, err := svc.SyncContacts(ctx, "")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed contacts")
	}

	logger.Info().Int("contacts", len(contacts)).Msg("Database seeding completed successfully!")
}
