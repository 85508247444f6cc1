package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"kidic/internal/push"
	"kidic/internal/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler upgrades authenticated requests to WebSocket push connections
type WSHandler struct {
	hub   *push.Hub
	codec *token.Codec
}

// NewWSHandler creates a new WebSocket handler
func NewWSHandler(hub *push.Hub, codec *token.Codec) *WSHandler {
	return &WSHandler{
		hub:   hub,
		codec: codec,
	}
}

// Connect authenticates and upgrades the connection. Browsers cannot
// set headers on WebSocket requests, so the token is also accepted as a
// query parameter.
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		raw = r.URL.Query().Get("token")
	}
	if raw == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
		return
	}

	claims, err := h.codec.Verify(raw)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required", "rejected websocket token", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}

	push.NewClient(h.hub, conn, claims.ParentID).Run()
}
