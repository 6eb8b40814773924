package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/engine"
	"github.com/mcdev12/draftroom/internal/draft/store"
	"github.com/mcdev12/draftroom/internal/models"
)

// AdminHandler exposes room lifecycle operations over plain HTTP. Picks
// themselves go through the WebSocket gateway; this surface is for operators
// and tooling.
type AdminHandler struct {
	store    store.Store
	engine   *engine.Engine
	defaults models.RoomSettings
}

func NewAdminHandler(st store.Store, eng *engine.Engine, defaults models.RoomSettings) *AdminHandler {
	return &AdminHandler{store: st, engine: eng, defaults: defaults}
}

type createRoomRequest struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`

	// Optional overrides; zero values fall back to the configured defaults.
	Rounds         int `json:"rounds,omitempty"`
	TimePerPickSec int `json:"time_per_pick_sec,omitempty"`
}

type createRoomResponse struct {
	Room    *models.DraftRoom `json:"room"`
	Entries []models.Entry    `json:"entries"`
}

func (h *AdminHandler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if len(req.Entries) < 2 {
		http.Error(w, "at least two entries are required", http.StatusBadRequest)
		return
	}

	settings := h.defaults
	if req.Rounds > 0 {
		settings.Rounds = req.Rounds
	}
	if req.TimePerPickSec > 0 {
		settings.TimePerPickSec = req.TimePerPickSec
	}

	roomID := uuid.New()
	entries := make([]models.Entry, len(req.Entries))
	settings.DraftOrder = make([]uuid.UUID, len(req.Entries))
	for i, name := range req.Entries {
		entries[i] = models.Entry{
			ID:          uuid.New(),
			RoomID:      roomID,
			DisplayName: name,
		}
		settings.DraftOrder[i] = entries[i].ID
	}

	room := &models.DraftRoom{
		ID:       roomID,
		Name:     req.Name,
		Status:   models.RoomStatusScheduled,
		Settings: settings,
	}
	if err := h.store.CreateRoom(r.Context(), room); err != nil {
		log.Error().Err(err).Str("room_name", req.Name).Msg("failed to create room")
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}
	if err := h.store.CreateEntries(r.Context(), entries); err != nil {
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to create entries")
		http.Error(w, "failed to create entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, createRoomResponse{Room: room, Entries: entries})
}

func (h *AdminHandler) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}

	room, err := h.store.GetRoom(r.Context(), roomID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	slots, err := h.store.ListPickSlots(r.Context(), roomID)
	if err != nil {
		h.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room":  room,
		"slots": slots,
	})
}

func (h *AdminHandler) handleStartRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}
	if err := h.engine.StartDraft(r.Context(), roomID); err != nil {
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to start draft")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handlePauseRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// A missing or empty body pauses with no reason.
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := h.engine.PauseRoom(r.Context(), roomID, body.Reason); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleResumeRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}
	if err := h.engine.ResumeRoom(r.Context(), roomID); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.roomID(w, r)
	if !ok {
		return
	}
	players, err := h.store.ListAvailablePlayers(r.Context(), roomID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (h *AdminHandler) roomID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return roomID, true
}

func (h *AdminHandler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	log.Error().Err(err).Msg("admin store request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// RegisterRoutes registers admin routes with an HTTP mux.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/rooms", h.handleCreateRoom)
	mux.HandleFunc("GET /admin/rooms/{id}", h.handleGetRoom)
	mux.HandleFunc("GET /admin/rooms/{id}/available", h.handleListAvailable)
	mux.HandleFunc("POST /admin/rooms/{id}/start", h.handleStartRoom)
	mux.HandleFunc("POST /admin/rooms/{id}/pause", h.handlePauseRoom)
	mux.HandleFunc("POST /admin/rooms/{id}/resume", h.handleResumeRoom)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
