package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHub_Publish(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client-1", 1)
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(1, TransactionCreated(map[string]interface{}{"transactionId": float64(42)}))

	assert.Eventually(t, func() bool {
		return len(client.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNoOpPublisher_Publish(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish(1, TransactionCreated(map[string]interface{}{"transactionId": float64(1)}))
	})
}

func TestNoOpPublisher_Implements_EventPublisher(t *testing.T) {
	var _ EventPublisher = (*NoOpPublisher)(nil)
}
