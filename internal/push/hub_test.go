package push

import (
	"encoding/json"
	"testing"
)

func newTestClient(h *Hub, parentID int64, buffer int) *Client {
	return &Client{
		hub:      h,
		parentID: parentID,
		send:     make(chan []byte, buffer),
	}
}

func TestSendToUserDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 7, sendBufferSize)
	hub.register(client)

	hub.SendToUser(7, map[string]string{"content": "hello"})

	select {
	case data := <-client.send:
		var payload map[string]string
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("delivered payload is not valid JSON: %v", err)
		}
		if payload["content"] != "hello" {
			t.Errorf("expected content 'hello', got %q", payload["content"])
		}
	default:
		t.Fatal("expected a message on the client's send channel")
	}
}

func TestSendToUserSkipsOtherParents(t *testing.T) {
	hub := NewHub()
	target := newTestClient(hub, 1, sendBufferSize)
	other := newTestClient(hub, 2, sendBufferSize)
	hub.register(target)
	hub.register(other)

	hub.SendToUser(1, map[string]string{"content": "only for one"})

	if len(target.send) != 1 {
		t.Errorf("expected 1 message for target, got %d", len(target.send))
	}
	if len(other.send) != 0 {
		t.Errorf("expected no messages for other parent, got %d", len(other.send))
	}
}

func TestSendToUserWithNoConnectionsIsNoOp(t *testing.T) {
	hub := NewHub()

	// Must not panic or block
	hub.SendToUser(42, map[string]string{"content": "nobody home"})

	if hub.ConnectedUsers() != 0 {
		t.Errorf("expected 0 connected users, got %d", hub.ConnectedUsers())
	}
}

func TestSendToUserDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 5, 1)
	hub.register(client)

	hub.SendToUser(5, map[string]string{"content": "first"})
	hub.SendToUser(5, map[string]string{"content": "dropped"})

	if len(client.send) != 1 {
		t.Fatalf("expected exactly 1 buffered message, got %d", len(client.send))
	}
	data := <-client.send
	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload["content"] != "first" {
		t.Errorf("expected the first message to survive, got %q", payload["content"])
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub, 9, sendBufferSize)
	second := newTestClient(hub, 9, sendBufferSize)
	hub.register(first)
	hub.register(second)

	if hub.ConnectedUsers() != 1 {
		t.Fatalf("expected 1 connected user, got %d", hub.ConnectedUsers())
	}

	hub.unregister(first)
	if hub.ConnectedUsers() != 1 {
		t.Errorf("parent should stay connected while a connection remains")
	}

	hub.unregister(second)
	if hub.ConnectedUsers() != 0 {
		t.Errorf("expected 0 connected users after last unregister, got %d", hub.ConnectedUsers())
	}

	// Unregistering an unknown client must be a no-op
	hub.unregister(first)
}

// A disconnect landing in the middle of a fan-out must not panic the
// sender: unregister closes the send channel, and a send on a closed
// channel would take the whole process down.
func TestSendToUserDuringUnregister(t *testing.T) {
	hub := NewHub()

	for i := 0; i < 200; i++ {
		client := newTestClient(hub, 1, 1)
		hub.register(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			hub.SendToUser(1, map[string]string{"content": "racing"})
		}()
		hub.unregister(client)
		<-done
	}

	if hub.ConnectedUsers() != 0 {
		t.Errorf("expected 0 connected users, got %d", hub.ConnectedUsers())
	}
}

func TestSendToUserFansOutToAllConnections(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub, 3, sendBufferSize)
	second := newTestClient(hub, 3, sendBufferSize)
	hub.register(first)
	hub.register(second)

	hub.SendToUser(3, map[string]string{"content": "both"})

	if len(first.send) != 1 || len(second.send) != 1 {
		t.Errorf("expected both connections to receive the message, got %d and %d",
			len(first.send), len(second.send))
	}
}
