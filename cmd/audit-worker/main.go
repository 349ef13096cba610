package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"personalFinance/internal/config"
	"personalFinance/internal/db"
	"personalFinance/internal/events"
	"personalFinance/internal/logging"
	"personalFinance/repository"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := config.LoadEnvFile(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stderr).With().Str("component", "audit-worker").Logger()

	if err := run(cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("audit worker stopped")
	}
	log.Info().Msg("audit worker stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.AMQP.URL == "" {
		return fmt.Errorf("AMQP_URL is required")
	}
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer d.Close()

	client, err := events.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	return client.ConsumeAudit(ctx, storeAudit(repository.NewAuditRepository(d)))
}

// storeAudit persists each consumed event. Redeliveries are absorbed by the
// unique event_id.
func storeAudit(repo *repository.AuditRepository) func(context.Context, *events.AuditEvent) error {
	return func(ctx context.Context, e *events.AuditEvent) error {
		if err := repo.Insert(ctx, e.Entry()); err != nil {
			return fmt.Errorf("store audit event %s: %w", e.EventID, err)
		}
		zerolog.Ctx(ctx).Debug().
			Str("event_id", e.EventID).
			Str("entity", e.Entity).
			Int64("entity_id", e.EntityID).
			Str("action", e.Action).
			Msg("audit event stored")
		return nil
	}
}
