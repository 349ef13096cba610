package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked, f.requeued = true, requeue
	return nil
}

func TestAuditEventJSON(t *testing.T) {
	e := NewAuditEvent("transaction", 9, ActionCreated, 1, 2)
	require.NotEmpty(t, e.EventID)

	body, err := e.ToJSON()
	require.NoError(t, err)
	got, err := AuditEventFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, e.EventID, got.EventID)
	assert.Equal(t, int64(9), got.EntityID)

	_, err = AuditEventFromJSON([]byte(`{"entity":"x"}`))
	assert.Error(t, err)
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	body, err := NewAuditEvent("budget", 1, ActionDeleted, 1, 1).ToJSON()
	require.NoError(t, err)

	ack := &fakeAck{}
	require.NoError(t, settle(ctx, body, ack, func(context.Context, *AuditEvent) error { return nil }))
	assert.True(t, ack.acked)

	ack = &fakeAck{}
	err = settle(ctx, body, ack, func(context.Context, *AuditEvent) error { return errors.New("db busy") })
	assert.Error(t, err)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)

	ack = &fakeAck{}
	err = settle(ctx, []byte("not json"), ack, func(context.Context, *AuditEvent) error {
		t.Fatal("handler must not run")
		return nil
	})
	assert.Error(t, err)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishAudit(context.Background(), NewAuditEvent("user", 1, ActionCreated, 0, 1)))
}
