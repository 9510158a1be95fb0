package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_Publish(t *testing.T) {
	hub := NewHub(zap.NewNop())

	hub.Publish("order_created", map[string]interface{}{"order_id": "abc"})

	select {
	case raw := <-hub.Broadcast:
		var msg struct {
			Type string                 `json:"type"`
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "order_created", msg.Type)
		assert.Equal(t, "abc", msg.Data["order_id"])
	default:
		t.Fatal("expected a queued message")
	}
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	hub := NewHub(zap.NewNop())

	for i := 0; i < broadcastBuffer+5; i++ {
		hub.Publish("event_reallocated", i)
	}

	assert.Len(t, hub.Broadcast, broadcastBuffer)
}

func TestHub_UnmarshalablePayload(t *testing.T) {
	hub := NewHub(zap.NewNop())

	hub.Publish("bad", make(chan int))

	assert.Empty(t, hub.Broadcast)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	hub.Publish("product_created", "x")
	hub.Close()
	hub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Zero(t, hub.ClientCount())
}
