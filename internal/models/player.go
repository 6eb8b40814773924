package models

import (
	"github.com/google/uuid"
)

// Position defines a player's roster position tag.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Player is an item in the shared draft pool. The engine never mutates
// player metadata; availability means "not present in any committed pick of
// the room". Rank comes from externally ingested projections (lower is
// better) and drives autopick ordering.
type Player struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Position Position  `json:"position"`
	Team     string    `json:"team,omitempty"`
	Rank     int       `json:"rank"`
}
