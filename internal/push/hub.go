package push

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks live WebSocket connections keyed by parent id and delivers
// per-user payloads to every connection that parent has open. Delivery is
// best-effort: parents with no open connection are skipped silently, and
// a connection whose buffer is full drops the message. Durable state
// lives in the notifications table, not here.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]bool),
	}
}

// register adds a client's connection to its parent's set
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.parentID]
	if !ok {
		conns = make(map[*Client]bool)
		h.clients[c.parentID] = conns
	}
	conns[c] = true
	log.Printf("push: parent %d connected (%d connections)", c.parentID, len(conns))
}

// unregister removes a client and closes its send channel
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.parentID]
	if !ok {
		return
	}
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	close(c.send)
	if len(conns) == 0 {
		delete(h.clients, c.parentID)
	}
	log.Printf("push: parent %d disconnected (%d connections)", c.parentID, len(conns))
}

// SendToUser delivers a payload to every open connection of one parent.
// The return value is never consulted by callers; failures here are
// expected and silent.
func (h *Hub) SendToUser(parentID int64, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("push: failed to encode payload for parent %d: %v", parentID, err)
		return
	}

	// Hold the lock across the sends so unregister cannot close a send
	// channel mid-loop. The sends never block, so this stays cheap.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[parentID] {
		select {
		case c.send <- data:
		default:
			// Slow consumer: drop the message rather than block the caller
			log.Printf("push: dropping message for parent %d, send buffer full", parentID)
		}
	}
}

// ConnectedUsers reports how many distinct parents have open connections
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
