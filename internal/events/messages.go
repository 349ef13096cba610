package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"personalFinance/models"
)

// Audit actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEvent records one successful mutation of a domain entity.
type AuditEvent struct {
	EventID    string    `json:"event_id"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	ActorID    int64     `json:"actor_id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAuditEvent stamps a new event with a random id and the current time.
func NewAuditEvent(entity string, entityID int64, action string, actorID, userID int64) *AuditEvent {
	return &AuditEvent{
		EventID:    uuid.NewString(),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *AuditEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AuditEventFromJSON decodes an event and rejects payloads without an id or entity.
func AuditEventFromJSON(data []byte) (*AuditEvent, error) {
	var e AuditEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.EventID == "" || e.Entity == "" {
		return nil, errInvalidEvent
	}
	return &e, nil
}

// entryTimeLayout is fixed width so stored timestamps sort as text.
const entryTimeLayout = "2006-01-02T15:04:05.000000Z"

// Entry converts e into the row stored in audit_log.
func (e *AuditEvent) Entry() *models.AuditEntry {
	return &models.AuditEntry{
		EventID:    e.EventID,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		Action:     e.Action,
		ActorID:    e.ActorID,
		UserID:     e.UserID,
		OccurredAt: e.OccurredAt.UTC().Format(entryTimeLayout),
	}
}
