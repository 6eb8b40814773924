package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for room connections.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a WebSocket handler.
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleRoomConnection upgrades a client onto a room's event stream.
// last_seq is optional; a reconnecting client passes its last-seen sequence
// number to receive the missed events before live delivery.
func (h *WebSocketHandler) HandleRoomConnection(w http.ResponseWriter, r *http.Request) {
	roomIDStr := r.URL.Query().Get("room_id")
	if roomIDStr == "" {
		http.Error(w, "room_id is required", http.StatusBadRequest)
		return
	}
	roomID, err := uuid.Parse(roomIDStr)
	if err != nil {
		http.Error(w, "invalid room_id format", http.StatusBadRequest)
		return
	}

	// Entry identity comes from the session layer in production; the query
	// parameter keeps local development simple.
	entryIDStr := r.URL.Query().Get("entry_id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		http.Error(w, "invalid entry_id format", http.StatusBadRequest)
		return
	}

	var lastSeq uint64
	if raw := r.URL.Query().Get("last_seq"); raw != "" {
		lastSeq, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid last_seq format", http.StatusBadRequest)
			return
		}
	}

	if err := h.connectionManager.UpgradeConnection(w, r, entryID, roomID, lastSeq); err != nil {
		log.Error().
			Err(err).
			Str("room_id", roomID.String()).
			Str("entry_id", entryID.String()).
			Msg("failed to upgrade WebSocket connection")
		return
	}
}

// HandleConnectionStats returns statistics about active connections.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	total, rooms := h.connectionManager.GetConnectionStats()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"total_connections":%d,"active_rooms":%d}`, total, rooms)
}

// RegisterRoutes registers WebSocket routes with an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/room", h.HandleRoomConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
