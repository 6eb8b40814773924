package autopick

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

func testRoom() *models.DraftRoom {
	return &models.DraftRoom{
		ID:     uuid.New(),
		Status: models.RoomStatusInProgress,
		Settings: models.RoomSettings{
			Rounds:         9,
			TimePerPickSec: 30,
			Rules: models.RosterRules{
				Slots: map[models.Position]int{
					models.PositionQB: 1,
					models.PositionRB: 2,
					models.PositionWR: 2,
					models.PositionTE: 1,
				},
				FlexSlots:     1,
				FlexPositions: []models.Position{models.PositionRB, models.PositionWR, models.PositionTE},
				BenchSlots:    2,
			},
		},
	}
}

func ranked(rank int, pos models.Position) models.Player {
	return models.Player{ID: uuid.New(), FullName: "player", Position: pos, Rank: rank}
}

func TestBestAvailablePicksLowestRank(t *testing.T) {
	pool := []models.Player{
		ranked(30, models.PositionWR),
		ranked(5, models.PositionRB),
		ranked(12, models.PositionQB),
	}

	got, err := NewBestAvailable().SelectPlayer(context.Background(), Selection{
		Room:      testRoom(),
		EntryID:   uuid.New(),
		Available: pool,
	})
	require.NoError(t, err)
	assert.Equal(t, pool[1].ID, got.ID)
}

func TestBestAvailableTieBreaksOnPlayerID(t *testing.T) {
	a := ranked(5, models.PositionRB)
	b := ranked(5, models.PositionRB)
	want := a
	if b.ID.String() < a.ID.String() {
		want = b
	}

	sel := Selection{Room: testRoom(), Available: []models.Player{a, b}}
	strategy := NewBestAvailable()

	// Repeated invocations with identical inputs must agree.
	for i := 0; i < 5; i++ {
		got, err := strategy.SelectPlayer(context.Background(), sel)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	}
}

func TestBestAvailableSkipsIllegalCandidates(t *testing.T) {
	// Roster already holds the max of QBs; the top-ranked QB must be
	// skipped in favor of the next legal player.
	roster := []models.Player{
		ranked(1, models.PositionQB),
		ranked(40, models.PositionQB),
		ranked(41, models.PositionQB),
	}
	topQB := ranked(2, models.PositionQB)
	nextRB := ranked(9, models.PositionRB)

	got, err := NewBestAvailable().SelectPlayer(context.Background(), Selection{
		Room:      testRoom(),
		Available: []models.Player{topQB, nextRB},
		Roster:    roster,
	})
	require.NoError(t, err)
	assert.Equal(t, nextRB.ID, got.ID)
}

func TestBestAvailableNoneAvailable(t *testing.T) {
	roster := []models.Player{
		ranked(1, models.PositionQB),
		ranked(2, models.PositionQB),
		ranked(3, models.PositionQB),
	}

	_, err := NewBestAvailable().SelectPlayer(context.Background(), Selection{
		Room:      testRoom(),
		Available: []models.Player{ranked(4, models.PositionQB)},
		Roster:    roster,
	})
	assert.ErrorIs(t, err, ErrNoneAvailable)
}

func TestRandomOnlyReturnsLegalPlayers(t *testing.T) {
	roster := []models.Player{
		ranked(1, models.PositionQB),
		ranked(2, models.PositionQB),
		ranked(3, models.PositionQB),
	}
	rb := ranked(50, models.PositionRB)

	strategy := NewRandom()
	for i := 0; i < 10; i++ {
		got, err := strategy.SelectPlayer(context.Background(), Selection{
			Room:      testRoom(),
			Available: []models.Player{ranked(4, models.PositionQB), rb},
			Roster:    roster,
		})
		require.NoError(t, err)
		assert.Equal(t, rb.ID, got.ID)
	}
}
