package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the kind of change an event describes
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeResync  EventType = "resync"
)

// EntityType names the ledger entity an event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeCategory    EntityType = "category"
	EntityTypeLedger      EntityType = "ledger"
)

// Event is the message pushed to subscribers.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// CategoryCreated is emitted when a transaction write introduced a new category
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// ResyncPayload tells a subscriber which ledger to refetch
type ResyncPayload struct {
	UserID int32 `json:"userId"`
}

// LedgerResync is sent to a subscriber that missed events; its cached
// transactions and balance can no longer be trusted.
func LedgerResync(userID int32) Event {
	return NewEvent(EventTypeResync, EntityTypeLedger, ResyncPayload{UserID: userID})
}
