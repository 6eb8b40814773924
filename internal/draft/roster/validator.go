// Package roster decides whether a candidate player may legally join an
// entry's roster under a room's roster rules. Validation is pure and is
// re-run by the engine at commit time, since the roster may have changed
// between intent and commit.
package roster

import (
	"errors"
	"fmt"

	"github.com/mcdev12/draftroom/internal/models"
)

var (
	// ErrPositionFull means the candidate's position has no dedicated,
	// flex, or bench capacity left on the roster.
	ErrPositionFull = errors.New("position full")

	// ErrAlreadyRostered means the entry already owns the candidate.
	ErrAlreadyRostered = errors.New("player already rostered")

	// ErrRosterComplete means the entry has no open slots at all.
	ErrRosterComplete = errors.New("roster complete")
)

// Validate reports whether candidate may be added to the current roster.
// A candidate occupies, in order of preference: a dedicated slot for its
// position, a flex slot if its position is flex-eligible, then a bench slot.
func Validate(current []models.Player, candidate models.Player, rules models.RosterRules, totalRounds int) error {
	capacity := rules.TotalSlots()
	if capacity > totalRounds {
		// The draft fills at most one slot per round.
		capacity = totalRounds
	}
	if len(current) >= capacity {
		return ErrRosterComplete
	}

	counts := make(map[models.Position]int, len(rules.Slots))
	for _, p := range current {
		if p.ID == candidate.ID {
			return fmt.Errorf("%w: %s", ErrAlreadyRostered, candidate.ID)
		}
		counts[p.Position]++
	}
	counts[candidate.Position]++

	if !fits(counts, rules) {
		return fmt.Errorf("%w: %s", ErrPositionFull, candidate.Position)
	}
	return nil
}

// fits checks that the per-position counts admit an assignment to dedicated,
// flex, and bench slots. Overflow from flex-eligible positions consumes flex
// before bench; overflow from other positions can only use the bench.
func fits(counts map[models.Position]int, rules models.RosterRules) bool {
	eligibleOverflow := 0
	otherOverflow := 0
	for pos, n := range counts {
		over := n - rules.Slots[pos]
		if over <= 0 {
			continue
		}
		if rules.FlexEligible(pos) {
			eligibleOverflow += over
		} else {
			otherOverflow += over
		}
	}

	benchNeeded := otherOverflow
	if spill := eligibleOverflow - rules.FlexSlots; spill > 0 {
		benchNeeded += spill
	}
	return benchNeeded <= rules.BenchSlots
}
