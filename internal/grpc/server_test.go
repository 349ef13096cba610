package grpcserver

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"personalFinance/internal/auth"
	"personalFinance/internal/testutil"
)

type flakyDB struct{ down atomic.Bool }

func (f *flakyDB) PingContext(context.Context) error {
	if f.down.Load() {
		return errors.New("db down")
	}
	return nil
}

func dialBufconn(t *testing.T, issuer *auth.Issuer) (*grpc.ClientConn, func(context.Context, *flakyDB, time.Duration)) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv, hs := NewServer(issuer)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	watch := func(ctx context.Context, db *flakyDB, every time.Duration) {
		go WatchDB(ctx, hs, db, every, zerolog.Nop())
	}
	return conn, watch
}

func waitForStatus(t *testing.T, client healthpb.HealthClient, want healthpb.HealthCheckResponse_ServingStatus) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
		cancel()
		if err == nil && resp.GetStatus() == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("status never became %v (last resp=%v err=%v)", want, resp, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestHealth_FollowsDatabase(t *testing.T) {
	conn, watch := dialBufconn(t, auth.NewIssuer("s", time.Hour))
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	db := &flakyDB{}
	watch(ctx, db, 20*time.Millisecond)

	// Check is allowlisted: no bearer token needed.
	waitForStatus(t, client, healthpb.HealthCheckResponse_SERVING)
	db.down.Store(true)
	waitForStatus(t, client, healthpb.HealthCheckResponse_NOT_SERVING)
	db.down.Store(false)
	waitForStatus(t, client, healthpb.HealthCheckResponse_SERVING)
}

func TestHealthWatch_RequiresToken(t *testing.T) {
	conn, _ := dialBufconn(t, auth.NewIssuer("s", time.Hour))
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	stream, err := client.Watch(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("open watch: %v", err)
	}
	if _, err := stream.Recv(); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", err)
	}

	tok := testutil.GenerateJWTHS256(t, "s", 1, 1, "root@example.com", time.Minute)
	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
	stream, err = client.Watch(authed, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("open watch: %v", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		t.Fatalf("watch with token: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", resp.GetStatus())
	}
}
