package models

// AuditEntry is a stored domain event, written by the audit worker.
type AuditEntry struct {
	ID         int64  `db:"id" json:"id"`
	EventID    string `db:"event_id" json:"event_id"`
	Entity     string `db:"entity" json:"entity"`
	EntityID   int64  `db:"entity_id" json:"entity_id"`
	Action     string `db:"action" json:"action"`
	ActorID    int64  `db:"actor_id" json:"actor_id"`
	UserID     int64  `db:"user_id" json:"user_id"`
	OccurredAt string `db:"occurred_at" json:"occurred_at"`
}
