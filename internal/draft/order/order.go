// Package order generates the deterministic pick slot sequence for a draft
// room. Generation is pure: given the same configuration it always produces
// slots with the same (round, pick, overall, entry) assignments.
package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
)

// ErrInvalidConfiguration is returned when the room configuration cannot
// produce a draft order.
var ErrInvalidConfiguration = errors.New("invalid draft configuration")

// Config is the input to slot generation.
type Config struct {
	RoomID             uuid.UUID
	Entries            []uuid.UUID // initial entry order
	Rounds             int
	ThirdRoundReversal bool // round 3 repeats round 2's direction
	Linear             bool // same order every round, no snake reversal
}

// Generate produces all Rounds*len(Entries) pick slots for a room in snake
// order: odd rounds iterate entries forward, even rounds backward. The
// overall pick number is (round-1)*N + position-in-round.
func Generate(cfg Config) ([]models.PickSlot, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	numEntries := len(cfg.Entries)
	slots := make([]models.PickSlot, 0, cfg.Rounds*numEntries)

	overall := 1
	for round := 1; round <= cfg.Rounds; round++ {
		for pick, entryID := range roundOrder(cfg, round) {
			slots = append(slots, models.PickSlot{
				ID:          uuid.New(),
				RoomID:      cfg.RoomID,
				Round:       round,
				Pick:        pick + 1, // 1-indexed within the round
				OverallPick: overall,
				EntryID:     entryID,
			})
			overall++
		}
	}

	return slots, nil
}

// roundOrder returns the entry order for a single round.
func roundOrder(cfg Config, round int) []uuid.UUID {
	if cfg.Linear {
		return cfg.Entries
	}

	reversed := round%2 == 0
	if cfg.ThirdRoundReversal && round >= 3 {
		// Round 3 repeats round 2's direction, then the snake continues
		// with flipped parity: rev, rev, fwd, rev, fwd, ...
		reversed = round%2 == 1
	}
	if !reversed {
		return cfg.Entries
	}

	n := len(cfg.Entries)
	out := make([]uuid.UUID, n)
	for i, entryID := range cfg.Entries {
		out[n-1-i] = entryID
	}
	return out
}

func validate(cfg Config) error {
	if cfg.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be greater than 0, got %d", ErrInvalidConfiguration, cfg.Rounds)
	}
	if len(cfg.Entries) == 0 {
		return fmt.Errorf("%w: entry order is empty", ErrInvalidConfiguration)
	}
	seen := make(map[uuid.UUID]struct{}, len(cfg.Entries))
	for _, entryID := range cfg.Entries {
		if entryID == uuid.Nil {
			return fmt.Errorf("%w: entry order contains nil id", ErrInvalidConfiguration)
		}
		if _, ok := seen[entryID]; ok {
			return fmt.Errorf("%w: duplicate entry %s in draft order", ErrInvalidConfiguration, entryID)
		}
		seen[entryID] = struct{}{}
	}
	return nil
}
