package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus defines the lifecycle state of a draft room.
type RoomStatus string

const (
	RoomStatusScheduled  RoomStatus = "SCHEDULED"
	RoomStatusInProgress RoomStatus = "IN_PROGRESS"
	RoomStatusPaused     RoomStatus = "PAUSED"
	RoomStatusCompleted  RoomStatus = "COMPLETED"
)

// RoomSettings holds JSONB configuration for a draft room.
type RoomSettings struct {
	Rounds             int         `json:"rounds"`
	TimePerPickSec     int         `json:"time_per_pick_sec"`
	DraftOrder         []uuid.UUID `json:"draft_order,omitempty"`
	ThirdRoundReversal bool        `json:"third_round_reversal,omitempty"`
	LinearOrder        bool        `json:"linear_order,omitempty"` // no snake reversal
	Rules              RosterRules `json:"rules"`
}

// TimePerPick returns the configured pick duration.
func (s RoomSettings) TimePerPick() time.Duration {
	return time.Duration(s.TimePerPickSec) * time.Second
}

// DraftRoom represents a single draft instance with a fixed set of entries.
// Rooms are created SCHEDULED, mutated only by the engine, and immutable
// once COMPLETED.
type DraftRoom struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Status       RoomStatus   `json:"status"`
	Settings     RoomSettings `json:"settings"`
	NextDeadline *time.Time   `json:"next_deadline,omitempty"`
	ScheduledAt  *time.Time   `json:"scheduled_at,omitempty"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
