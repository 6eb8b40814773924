package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestGenerateSnakeOrder(t *testing.T) {
	entries := entryIDs(2)
	slots, err := Generate(Config{
		RoomID:  uuid.New(),
		Entries: entries,
		Rounds:  2,
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)

	// Two entries, two rounds: E0, E1, E1, E0.
	assert.Equal(t, entries[0], slots[0].EntryID)
	assert.Equal(t, entries[1], slots[1].EntryID)
	assert.Equal(t, entries[1], slots[2].EntryID)
	assert.Equal(t, entries[0], slots[3].EntryID)

	for i, slot := range slots {
		assert.Equal(t, i+1, slot.OverallPick)
	}
}

func TestGenerateSlotNumbering(t *testing.T) {
	entries := entryIDs(4)
	rounds := 6
	slots, err := Generate(Config{
		RoomID:  uuid.New(),
		Entries: entries,
		Rounds:  rounds,
	})
	require.NoError(t, err)
	require.Len(t, slots, rounds*len(entries))

	seen := make(map[[2]int]bool)
	for i, slot := range slots {
		assert.Equal(t, i+1, slot.OverallPick, "overall picks must be dense and ordered")
		assert.Equal(t, (slot.Round-1)*len(entries)+slot.Pick, slot.OverallPick)

		key := [2]int{slot.Round, slot.Pick}
		assert.False(t, seen[key], "duplicate (round, pick) pair %v", key)
		seen[key] = true
	}

	// Each entry gets exactly one slot per round.
	perRound := make(map[int]map[uuid.UUID]int)
	for _, slot := range slots {
		if perRound[slot.Round] == nil {
			perRound[slot.Round] = make(map[uuid.UUID]int)
		}
		perRound[slot.Round][slot.EntryID]++
	}
	for round, counts := range perRound {
		for entryID, n := range counts {
			assert.Equal(t, 1, n, "entry %s has %d slots in round %d", entryID, n, round)
		}
	}
}

func TestGenerateSnakeReversesEvenRounds(t *testing.T) {
	entries := entryIDs(3)
	slots, err := Generate(Config{
		RoomID:  uuid.New(),
		Entries: entries,
		Rounds:  4,
	})
	require.NoError(t, err)

	for _, slot := range slots {
		want := entries[slot.Pick-1]
		if slot.Round%2 == 0 {
			want = entries[len(entries)-slot.Pick]
		}
		assert.Equal(t, want, slot.EntryID, "round %d pick %d", slot.Round, slot.Pick)
	}
}

func TestGenerateThirdRoundReversal(t *testing.T) {
	entries := entryIDs(3)
	slots, err := Generate(Config{
		RoomID:             uuid.New(),
		Entries:            entries,
		Rounds:             4,
		ThirdRoundReversal: true,
	})
	require.NoError(t, err)

	// Round 3 repeats round 2's reversed direction, then the snake
	// continues: fwd, rev, rev, fwd.
	for _, slot := range slots {
		want := entries[slot.Pick-1]
		if slot.Round == 2 || slot.Round == 3 {
			want = entries[len(entries)-slot.Pick]
		}
		assert.Equal(t, want, slot.EntryID, "round %d pick %d", slot.Round, slot.Pick)
	}
}

func TestGenerateLinearOrder(t *testing.T) {
	entries := entryIDs(3)
	slots, err := Generate(Config{
		RoomID:  uuid.New(),
		Entries: entries,
		Rounds:  2,
		Linear:  true,
	})
	require.NoError(t, err)

	for _, slot := range slots {
		assert.Equal(t, entries[slot.Pick-1], slot.EntryID)
	}
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	dup := uuid.New()
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero rounds", cfg: Config{Entries: entryIDs(2), Rounds: 0}},
		{name: "negative rounds", cfg: Config{Entries: entryIDs(2), Rounds: -1}},
		{name: "no entries", cfg: Config{Rounds: 3}},
		{name: "nil entry id", cfg: Config{Entries: []uuid.UUID{uuid.New(), uuid.Nil}, Rounds: 3}},
		{name: "duplicate entry", cfg: Config{Entries: []uuid.UUID{dup, dup}, Rounds: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}
