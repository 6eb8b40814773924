// Package autopick selects a player on behalf of an entry when the draft
// clock expires before a human submission commits.
package autopick

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
)

// ErrNoneAvailable means no remaining player passes roster validation for
// the entry. The engine treats this as a fatal room configuration problem.
var ErrNoneAvailable = errors.New("no legal player available")

// Selection is the input to a strategy: the remaining pool and the state of
// the entry on the clock.
type Selection struct {
	Room      *models.DraftRoom
	EntryID   uuid.UUID
	Available []models.Player
	Roster    []models.Player
}

// Strategy picks a player for an expired slot. Implementations must only
// return players that pass roster validation against the supplied roster.
type Strategy interface {
	SelectPlayer(ctx context.Context, sel Selection) (*models.Player, error)
}
