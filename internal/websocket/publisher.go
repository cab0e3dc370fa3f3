package websocket

// EventPublisher delivers ledger events to a user's subscribers
type EventPublisher interface {
	Publish(userID int32, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the user's clients
func (h *Hub) Publish(userID int32, event Event) {
	h.Broadcast(userID, event)
}

// NoOpPublisher drops every event (for tests or when live updates are disabled)
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(userID int32, event Event) {}
