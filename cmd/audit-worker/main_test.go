package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalFinance/internal/config"
	"personalFinance/internal/events"
	"personalFinance/internal/testutil"
	"personalFinance/repository"
)

func TestStoreAudit_IdempotentOnEventID(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "auditworker")
	repo := repository.NewAuditRepository(d)
	handle := storeAudit(repo)
	ctx := context.Background()

	e := events.NewAuditEvent("budget", 4, events.ActionCreated, 1, 2)
	require.NoError(t, handle(ctx, e))
	require.NoError(t, handle(ctx, e))
	require.NoError(t, handle(ctx, events.NewAuditEvent("budget", 4, events.ActionDeleted, 1, 2)))

	trail, err := repo.ListByEntity(ctx, "budget", 4)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, events.ActionCreated, trail[0].Action)
	assert.Equal(t, e.EventID, trail[0].EventID)
	assert.Equal(t, int64(2), trail[0].UserID)
	assert.Equal(t, events.ActionDeleted, trail[1].Action)
}

func TestRun_RequiresBroker(t *testing.T) {
	err := run(&config.Config{}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AMQP_URL")
}
