package gateway

import (
	"encoding/json"
	"time"
)

// RoomEvent is the wire format delivered to WebSocket clients. Seq is a
// per-room monotonic sequence number assigned by the gateway; clients use it
// to detect gaps and request backfill on reconnect.
type RoomEvent struct {
	ID        string          `json:"id"`
	RoomID    string          `json:"room_id"`
	Type      EventType       `json:"type"`
	Seq       uint64          `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType represents the type of room event sent over WebSocket.
type EventType string

const (
	EventTypePickMade       EventType = "PickMade"
	EventTypePickStarted    EventType = "PickStarted"
	EventTypeDraftStarted   EventType = "DraftStarted"
	EventTypeDraftPaused    EventType = "DraftPaused"
	EventTypeDraftResumed   EventType = "DraftResumed"
	EventTypeDraftCompleted EventType = "DraftCompleted"
	EventTypeTimerTick      EventType = "TimerTick"
	EventTypePickResult     EventType = "PickResult"
)

// PickResultPayload is the direct response to a client's pick submission.
type PickResultPayload struct {
	Status      string `json:"status"` // committed, rejected
	Reason      string `json:"reason,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	OverallPick int    `json:"overall_pick,omitempty"`
}

// ClientCommand is a message sent by a connected client.
type ClientCommand struct {
	Action   string `json:"action"` // submit_pick
	PlayerID string `json:"player_id,omitempty"`
}
