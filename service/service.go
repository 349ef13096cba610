// Package service orchestrates validation, relationship checks and
// persistence for each entity. Every exported operation returns a
// result.Result; unexpected errors are logged here and surface as 500s.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"personalFinance/internal/auth"
	"personalFinance/internal/events"
	"personalFinance/internal/result"
)

// errAbort unwinds a transaction after a validation failure has been recorded.
var errAbort = errors.New("aborted")

// internalFailure logs err under op and returns the generic 500 Result.
func internalFailure[T any](ctx context.Context, op string, err error) result.Result[T] {
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("internal error")
	return result.Internal[T]()
}

// auditor publishes audit events after successful mutations. Failures are logged only.
type auditor struct {
	pub events.Publisher
}

func (a auditor) record(ctx context.Context, entity string, id int64, action string, ownerID int64) {
	if a.pub == nil {
		return
	}
	var actorID int64
	if who, ok := auth.FromContext(ctx); ok {
		actorID = who.ID
	}
	e := events.NewAuditEvent(entity, id, action, actorID, ownerID)
	if err := a.pub.PublishAudit(ctx, e); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("entity", entity).
			Int64("entity_id", id).
			Str("action", action).
			Msg("publish audit event")
	}
}
