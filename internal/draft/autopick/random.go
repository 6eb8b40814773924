package autopick

import (
	"context"
	"math/rand"
	"time"

	"github.com/mcdev12/draftroom/internal/draft/roster"
	"github.com/mcdev12/draftroom/internal/models"
)

// Random picks a uniformly random legal player. Useful for casual lobbies
// and load tests; production rooms use BestAvailable because the clock race
// requires a deterministic choice.
type Random struct {
	rng *rand.Rand
}

// NewRandom constructs a Random strategy with its own seed.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// SelectPlayer implements Strategy.
func (s *Random) SelectPlayer(ctx context.Context, sel Selection) (*models.Player, error) {
	rules := sel.Room.Settings.Rules
	rounds := sel.Room.Settings.Rounds

	legal := make([]models.Player, 0, len(sel.Available))
	for _, p := range sel.Available {
		if err := roster.Validate(sel.Roster, p, rules, rounds); err == nil {
			legal = append(legal, p)
		}
	}
	if len(legal) == 0 {
		return nil, ErrNoneAvailable
	}

	choice := legal[s.rng.Intn(len(legal))]
	return &choice, nil
}
