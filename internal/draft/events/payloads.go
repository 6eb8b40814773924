package events

import (
	"time"
)

// Event payload types shared between the engine, outbox relay, and gateway.

// Event type names as stored in the outbox and published on the bus.
const (
	TypePickStarted    = "PickStarted"
	TypePickMade       = "PickMade"
	TypeDraftStarted   = "DraftStarted"
	TypeDraftPaused    = "DraftPaused"
	TypeDraftResumed   = "DraftResumed"
	TypeDraftCompleted = "DraftCompleted"
	TypeTimerTick      = "TimerTick"
	TypeAuditEntry     = "AuditEntry"
)

// PickStartedPayload is emitted when a slot becomes current and its clock
// starts.
type PickStartedPayload struct {
	SlotID         string    `json:"slot_id"`
	EntryID        string    `json:"entry_id"`
	Round          int       `json:"round"`
	Pick           int       `json:"pick"`
	OverallPick    int       `json:"overall_pick"`
	StartedAt      time.Time `json:"started_at"`
	TimeoutAt      time.Time `json:"timeout_at"`
	TimePerPickSec int       `json:"time_per_pick_sec"`
}

// PickMadePayload is emitted once per committed pick, in commit order.
type PickMadePayload struct {
	SlotID      string    `json:"slot_id"`
	EntryID     string    `json:"entry_id"`
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	OverallPick int       `json:"overall_pick"`
	Origin      string    `json:"origin"`
	MadeAt      time.Time `json:"made_at"`
}

// DraftStartedPayload is emitted when a room transitions to in-progress.
type DraftStartedPayload struct {
	RoomID      string    `json:"room_id"`
	StartedAt   time.Time `json:"started_at"`
	TotalRounds int       `json:"total_rounds"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftCompletedPayload is emitted when the final slot is filled.
type DraftCompletedPayload struct {
	RoomID      string    `json:"room_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftPausedPayload is emitted on administrative or failure pauses.
type DraftPausedPayload struct {
	RoomID   string    `json:"room_id"`
	PausedAt time.Time `json:"paused_at"`
	Reason   string    `json:"reason"`
}

// DraftResumedPayload is emitted when a paused room resumes; the current
// slot's clock restarts with a full duration.
type DraftResumedPayload struct {
	RoomID    string    `json:"room_id"`
	ResumedAt time.Time `json:"resumed_at"`
}

// TimerTickPayload carries periodic clock-remaining updates. Ticks are
// generated at the gateway edge; the server deadline stays authoritative.
type TimerTickPayload struct {
	SlotID          string    `json:"slot_id"`
	EntryID         string    `json:"entry_id"`
	TimeRemainingMs int64     `json:"time_remaining_ms"`
	TickedAt        time.Time `json:"ticked_at"`
}

// AuditEntryPayload is a fire-and-forget observability record.
type AuditEntryPayload struct {
	RoomID     string    `json:"room_id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
