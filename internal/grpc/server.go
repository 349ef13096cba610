package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"personalFinance/internal/auth"
	"personalFinance/internal/config"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// DefaultPollInterval is how often the database is pinged to refresh health status.
const DefaultPollInterval = 10 * time.Second

// Pinger is the database liveness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer builds a gRPC server exposing grpc.health.v1 behind the bearer-token
// interceptors. Check is reachable without a token; the Watch stream is not.
func NewServer(issuer *auth.Issuer) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(issuer, healthCheckMethod)),
		grpc.StreamInterceptor(auth.NewStreamAuthInterceptor(issuer)),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// WatchDB keeps the overall serving status in line with db liveness until ctx is done.
func WatchDB(ctx context.Context, hs *health.Server, db Pinger, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	last := healthpb.HealthCheckResponse_UNKNOWN
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		status := healthpb.HealthCheckResponse_SERVING
		if err := db.PingContext(pctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			if last != status {
				log.Warn().Err(err).Msg("database unreachable; reporting NOT_SERVING")
			}
		}
		if status != last {
			hs.SetServingStatus("", status)
			last = status
		}
	}

	check()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-t.C:
			check()
		}
	}
}

// StartGRPC starts the health endpoint on cfg.GRPC.Address and returns a shutdown function.
func StartGRPC(cfg *config.Config, issuer *auth.Issuer, db Pinger, log zerolog.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return nil, err
	}

	srv, hs := NewServer(issuer)
	watchCtx, stopWatch := context.WithCancel(context.Background())
	go WatchDB(watchCtx, hs, db, DefaultPollInterval, log)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc serve")
		}
	}()

	return func(ctx context.Context) error {
		stopWatch()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
