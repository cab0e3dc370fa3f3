package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{"transactionId": 1, "userId": 7}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	evt := TransactionUpdated(map[string]interface{}{"transactionId": float64(42)})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "transaction.updated", decoded["type"])
	assert.Equal(t, "transaction", decoded["entity"])
	assert.NotNil(t, decoded["timestamp"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), payload["transactionId"])
}

func TestEventHelpers(t *testing.T) {
	payload := map[string]interface{}{"id": float64(1)}

	tests := []struct {
		name   string
		event  Event
		typ    string
		entity EntityType
	}{
		{"TransactionCreated", TransactionCreated(payload), "transaction.created", EntityTypeTransaction},
		{"TransactionUpdated", TransactionUpdated(payload), "transaction.updated", EntityTypeTransaction},
		{"TransactionDeleted", TransactionDeleted(payload), "transaction.deleted", EntityTypeTransaction},
		{"CategoryCreated", CategoryCreated(payload), "category.created", EntityTypeCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.event.Type)
			assert.Equal(t, tt.entity, tt.event.Entity)
			assert.Equal(t, payload, tt.event.Payload)
		})
	}
}
