package autopick

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/roster"
	"github.com/mcdev12/draftroom/internal/models"
)

// BestAvailable picks the top-ranked legal player. Ties break on player ID
// so the choice is a strict total order: two concurrent invocations with the
// same inputs always agree, which matters when a clock firing races a retry.
type BestAvailable struct{}

// NewBestAvailable constructs the engine's default strategy.
func NewBestAvailable() *BestAvailable {
	return &BestAvailable{}
}

// SelectPlayer implements Strategy.
func (s *BestAvailable) SelectPlayer(ctx context.Context, sel Selection) (*models.Player, error) {
	candidates := make([]models.Player, len(sel.Available))
	copy(candidates, sel.Available)

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rank != candidates[j].Rank {
			return candidates[i].Rank < candidates[j].Rank
		}
		return strings.Compare(candidates[i].ID.String(), candidates[j].ID.String()) < 0
	})

	rules := sel.Room.Settings.Rules
	rounds := sel.Room.Settings.Rounds
	for i := range candidates {
		if err := roster.Validate(sel.Roster, candidates[i], rules, rounds); err != nil {
			continue
		}
		log.Debug().
			Str("room_id", sel.Room.ID.String()).
			Str("entry_id", sel.EntryID.String()).
			Str("player_id", candidates[i].ID.String()).
			Int("rank", candidates[i].Rank).
			Msg("auto-pick selected best available player")
		return &candidates[i], nil
	}

	return nil, ErrNoneAvailable
}
