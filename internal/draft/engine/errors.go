package engine

import (
	"errors"

	"github.com/mcdev12/draftroom/internal/draft/roster"
)

// Routine rejections reported to callers. Losing a commit race is expected
// behavior under concurrency, not a system failure.
var (
	// ErrRoomNotStarted means the room has not begun drafting.
	ErrRoomNotStarted = errors.New("draft has not started")

	// ErrRoomPaused means the room is administratively paused.
	ErrRoomPaused = errors.New("room is paused")

	// ErrDraftComplete means every slot is filled; no further submissions
	// are accepted.
	ErrDraftComplete = errors.New("draft is complete")

	// ErrNotYourTurn means the submitting entry is not assigned to the
	// current pick slot.
	ErrNotYourTurn = errors.New("entry is not on the clock")

	// ErrPlayerUnavailable means the player already belongs to a
	// committed pick in this room.
	ErrPlayerUnavailable = errors.New("player is unavailable")

	// ErrLostRace means another attempt filled the current slot first.
	ErrLostRace = errors.New("pick lost the commit race")

	// ErrCommitFailed means the store stayed unavailable through bounded
	// retries. The room is paused rather than risk a skipped slot.
	ErrCommitFailed = errors.New("pick commit failed")
)

// RejectionReason maps a submission error to a stable, client-facing reason
// string. Unknown errors collapse to "internal_error" so store internals
// never leak to clients.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotStarted):
		return "draft_not_started"
	case errors.Is(err, ErrRoomPaused):
		return "room_paused"
	case errors.Is(err, ErrDraftComplete):
		return "draft_complete"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrPlayerUnavailable):
		return "player_unavailable"
	case errors.Is(err, roster.ErrPositionFull):
		return "position_full"
	case errors.Is(err, roster.ErrAlreadyRostered):
		return "already_rostered"
	case errors.Is(err, roster.ErrRosterComplete):
		return "roster_complete"
	case errors.Is(err, ErrLostRace):
		return "lost_race"
	case errors.Is(err, ErrCommitFailed):
		return "commit_failed"
	default:
		return "internal_error"
	}
}
