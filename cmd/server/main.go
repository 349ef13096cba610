package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"personalFinance/internal/auth"
	"personalFinance/internal/config"
	"personalFinance/internal/db"
	"personalFinance/internal/events"
	grpcserver "personalFinance/internal/grpc"
	"personalFinance/internal/httpapi"
	"personalFinance/internal/logging"
	"personalFinance/repository"
	"personalFinance/service"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := config.LoadEnvFile(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)
	log.Info().Stringer("config", cfg).Msg("configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Msg("close db")
		}
	}()

	var pub events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		client, err := events.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			return err
		}
		defer client.Close()
		pub = client
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("audit events enabled")
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	categories := service.NewCategoryService(repository.NewCategoryRepository(d), pub)
	api := httpapi.New(httpapi.Deps{
		Users:          service.NewUserService(d, pub),
		Auth:           service.NewAuthService(repository.NewUserRepository(d), issuer),
		Profiles:       service.NewProfileService(repository.NewProfileRepository(d)),
		Categories:     categories,
		Transactions:   service.NewTransactionService(d, categories, pub),
		Budgets:        service.NewBudgetService(d, pub),
		Savings:        service.NewSavingService(d, pub),
		Issuer:         issuer,
		DB:             d,
		Logger:         log,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownGRPC := func(context.Context) error { return nil }
	if cfg.GRPC.Address != "" {
		shutdownGRPC, err = grpcserver.StartGRPC(cfg, issuer, d, log)
		if err != nil {
			return err
		}
		log.Info().Str("addr", cfg.GRPC.Address).Msg("gRPC health server listening")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Address).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(httpSrv.Shutdown(sctx), shutdownGRPC(sctx))
	})

	return g.Wait()
}
