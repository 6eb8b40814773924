package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a participant roster slot in a draft room. The roster is
// append-only during the draft and is always derived from the committed pick
// history, never stored redundantly.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
