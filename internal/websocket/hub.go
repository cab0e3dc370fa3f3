package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is a hub member. Send must not block.
type ClientInterface interface {
	ID() string
	UserID() int32
	Send(data []byte) error
	Close() error
}

// Hub tracks live subscribers grouped by the user whose ledger they follow.
// It is safe for concurrent use.
type Hub struct {
	// subscribers maps user ID to a map of client ID to client
	subscribers map[int32]map[string]ClientInterface
	mu          sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int32]map[string]ClientInterface),
	}
}

// Register adds a client under its user
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.UserID()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[string]ClientInterface)
	}
	h.subscribers[userID][client.ID()] = client

	log.Debug().
		Int32("user_id", userID).
		Str("client_id", client.ID()).
		Msg("Ledger subscriber registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.UserID()
	clients, ok := h.subscribers[userID]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}

	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.subscribers, userID)
	}

	log.Debug().
		Int32("user_id", userID).
		Str("client_id", client.ID()).
		Msg("Ledger subscriber unregistered")
}

// Broadcast sends an event to every client following userID
func (h *Hub) Broadcast(userID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("user_id", userID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	targets := h.snapshot(userID)
	if len(targets) == 0 {
		return
	}

	// Send never blocks, so delivery stays in publish order per subscriber
	for _, client := range targets {
		if err := client.Send(data); err != nil {
			log.Warn().
				Err(err).
				Int32("user_id", userID).
				Str("client_id", client.ID()).
				Msg("Failed to send to client")
		}
	}

	log.Debug().
		Int32("user_id", userID).
		Str("event_type", event.Type).
		Int("client_count", len(targets)).
		Msg("Broadcast event")
}

// snapshot copies the client set so sends happen without holding the lock
func (h *Hub) snapshot(userID int32) []ClientInterface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.subscribers[userID]
	out := make([]ClientInterface, 0, len(clients))
	for _, c := range clients {
		out = append(out, c)
	}
	return out
}

// ClientCount returns the number of clients following a user's ledger
func (h *Hub) ClientCount(userID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// TotalClientCount returns the number of connected clients across all users
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.subscribers {
		total += len(clients)
	}
	return total
}

// CloseAll disconnects every client and empties the hub. Called on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	subscribers := h.subscribers
	h.subscribers = make(map[int32]map[string]ClientInterface)
	h.mu.Unlock()

	for _, clients := range subscribers {
		for _, c := range clients {
			_ = c.Close()
		}
	}
}
