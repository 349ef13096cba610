package repository

import (
	"context"
	"time"

	"personalFinance/models"
)

// AuditRepository stores domain events consumed from the message broker.
type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert stores e. Redelivered events with a known event_id are ignored.
func (r *AuditRepository) Insert(ctx context.Context, e *models.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO audit_log (event_id, entity, entity_id, action, actor_id, user_id, occurred_at)
VALUES (?,?,?,?,?,?,?)
ON CONFLICT(event_id) DO NOTHING`,
		e.EventID, e.Entity, e.EntityID, e.Action, e.ActorID, e.UserID, e.OccurredAt)
	return err
}

// ListByEntity returns the audit trail of one entity, oldest first.
func (r *AuditRepository) ListByEntity(ctx context.Context, entity string, entityID int64) ([]models.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, event_id, entity, entity_id, action, actor_id, user_id, occurred_at
FROM audit_log WHERE entity = ? AND entity_id = ? ORDER BY occurred_at, id`, entity, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.EventID, &e.Entity, &e.EntityID, &e.Action, &e.ActorID, &e.UserID, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
