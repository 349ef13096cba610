package events

import (
	"context"
	"errors"
)

var errInvalidEvent = errors.New("audit event missing event_id or entity")

// Publisher delivers audit events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishAudit(ctx context.Context, e *AuditEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishAudit(context.Context, *AuditEvent) error { return nil }
