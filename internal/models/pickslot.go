package models

import (
	"time"

	"github.com/google/uuid"
)

// PickOrigin records how a pick slot was filled.
type PickOrigin string

const (
	PickOriginHuman    PickOrigin = "HUMAN"
	PickOriginAutopick PickOrigin = "AUTOPICK"
)

// PickSlot represents a single turn in a draft room. The full slot sequence
// is generated once at draft start; a slot stays pending (nil PlayerID) until
// it is filled, exactly once, and a filled slot is the immutable pick record.
type PickSlot struct {
	ID          uuid.UUID   `json:"id"`
	RoomID      uuid.UUID   `json:"room_id"`
	Round       int         `json:"round"`
	Pick        int         `json:"pick"`         // pick number in the round
	OverallPick int         `json:"overall_pick"` // pick number overall
	EntryID     uuid.UUID   `json:"entry_id"`
	PlayerID    *uuid.UUID  `json:"player_id,omitempty"` // nil until picked
	Origin      *PickOrigin `json:"origin,omitempty"`
	PickedAt    *time.Time  `json:"picked_at,omitempty"`
}

// Filled reports whether the slot has been committed.
func (s *PickSlot) Filled() bool {
	return s.PlayerID != nil
}
