package roster

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/mcdev12/draftroom/internal/models"
)

func testRules() models.RosterRules {
	return models.RosterRules{
		Slots: map[models.Position]int{
			models.PositionQB: 1,
			models.PositionRB: 2,
			models.PositionWR: 2,
			models.PositionTE: 1,
		},
		FlexSlots:     1,
		FlexPositions: []models.Position{models.PositionRB, models.PositionWR, models.PositionTE},
		BenchSlots:    2,
	}
}

func player(pos models.Position) models.Player {
	return models.Player{ID: uuid.New(), FullName: "test player", Position: pos}
}

func players(positions ...models.Position) []models.Player {
	out := make([]models.Player, len(positions))
	for i, pos := range positions {
		out[i] = player(pos)
	}
	return out
}

func TestValidateOpenDedicatedSlot(t *testing.T) {
	current := players(models.PositionQB, models.PositionRB)
	err := Validate(current, player(models.PositionRB), testRules(), 9)
	assert.NoError(t, err)
}

func TestValidateFlexSlot(t *testing.T) {
	// Both RB slots filled; a third RB lands in flex.
	current := players(models.PositionRB, models.PositionRB)
	err := Validate(current, player(models.PositionRB), testRules(), 9)
	assert.NoError(t, err)
}

func TestValidateBenchAfterFlex(t *testing.T) {
	// Dedicated and flex exhausted for WR; bench still open.
	current := players(models.PositionWR, models.PositionWR, models.PositionWR)
	err := Validate(current, player(models.PositionWR), testRules(), 9)
	assert.NoError(t, err)
}

func TestValidatePositionFull(t *testing.T) {
	// 1 QB dedicated + 2 bench; QBs are not flex-eligible so a fourth QB
	// has nowhere to go.
	current := players(models.PositionQB, models.PositionQB, models.PositionQB)
	err := Validate(current, player(models.PositionQB), testRules(), 9)
	assert.ErrorIs(t, err, ErrPositionFull)
}

func TestValidateFlexOverflowRejected(t *testing.T) {
	// RB/WR/TE fill every dedicated, flex, and bench slot; one more
	// flex-eligible player must be rejected.
	current := players(
		models.PositionRB, models.PositionRB, models.PositionRB,
		models.PositionWR, models.PositionWR, models.PositionWR,
		models.PositionTE, models.PositionTE,
	)
	err := Validate(current, player(models.PositionTE), testRules(), 9)
	assert.ErrorIs(t, err, ErrPositionFull)
}

func TestValidateIneligibleOverflowDoesNotConsumeFlex(t *testing.T) {
	// A second QB sits on the bench, not in flex; flex stays open for an
	// eligible position.
	current := players(
		models.PositionQB, models.PositionQB,
		models.PositionRB, models.PositionRB,
	)
	err := Validate(current, player(models.PositionRB), testRules(), 9)
	assert.NoError(t, err)
}

func TestValidateAlreadyRostered(t *testing.T) {
	p := player(models.PositionWR)
	err := Validate([]models.Player{p}, p, testRules(), 9)
	assert.ErrorIs(t, err, ErrAlreadyRostered)
}

func TestValidateRosterComplete(t *testing.T) {
	rules := testRules()

	// Roster capacity is capped at the number of rounds.
	current := players(models.PositionQB, models.PositionRB, models.PositionWR)
	err := Validate(current, player(models.PositionWR), rules, 3)
	assert.ErrorIs(t, err, ErrRosterComplete)

	// Full nine-slot roster under the default rules.
	full := players(
		models.PositionQB,
		models.PositionRB, models.PositionRB,
		models.PositionWR, models.PositionWR,
		models.PositionTE,
		models.PositionRB, models.PositionWR, models.PositionTE,
	)
	err = Validate(full, player(models.PositionRB), rules, 20)
	assert.ErrorIs(t, err, ErrRosterComplete)
}
