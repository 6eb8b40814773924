// Package engine implements the pick transaction coordinator: turn
// enforcement, roster validation, the atomic conditional commit, clock
// re-arming, and room lifecycle. Human submissions and clock expirations
// funnel through the same commit path; the durable store decides which
// attempt wins.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/autopick"
	"github.com/mcdev12/draftroom/internal/draft/events"
	"github.com/mcdev12/draftroom/internal/draft/order"
	"github.com/mcdev12/draftroom/internal/draft/roster"
	"github.com/mcdev12/draftroom/internal/draft/store"
	"github.com/mcdev12/draftroom/internal/models"
)

// Config tunes commit retry behavior and injects fakes for tests.
type Config struct {
	// MaxCommitRetries bounds retries of a transient store failure before
	// the attempt surfaces ErrCommitFailed and the room pauses.
	MaxCommitRetries int
	// RetryBackoff is the base delay between commit retries; it grows
	// linearly per attempt.
	RetryBackoff time.Duration
	Clock        clockwork.Clock
	Notifier     Notifier
}

// DefaultConfig returns production settings with a real clock.
func DefaultConfig() Config {
	return Config{
		MaxCommitRetries: 3,
		RetryBackoff:     200 * time.Millisecond,
		Clock:            clockwork.NewRealClock(),
		Notifier:         noopNotifier{},
	}
}

// Engine coordinates pick transactions for draft rooms. It is safe for
// concurrent use from many goroutines; correctness rests on the store's
// conditional write, not in-process locking.
type Engine struct {
	store    store.Store
	emitter  Emitter
	strategy autopick.Strategy
	clock    clockwork.Clock
	notifier Notifier

	maxCommitRetries int
	retryBackoff     time.Duration
}

// NewEngine creates a pick transaction engine.
func NewEngine(st store.Store, emitter Emitter, strategy autopick.Strategy, cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = noopNotifier{}
	}
	return &Engine{
		store:            st,
		emitter:          emitter,
		strategy:         strategy,
		clock:            cfg.Clock,
		notifier:         cfg.Notifier,
		maxCommitRetries: cfg.MaxCommitRetries,
		retryBackoff:     cfg.RetryBackoff,
	}
}

// SetNotifier installs the clock scheduler wakeup after construction. The
// engine and scheduler reference each other, so one side is wired late.
func (e *Engine) SetNotifier(n Notifier) {
	if n != nil {
		e.notifier = n
	}
}

// SubmitPickInput is a human pick intent. Entry ownership is authenticated
// upstream; the engine re-validates turn ownership against live room state.
type SubmitPickInput struct {
	RoomID   uuid.UUID
	EntryID  uuid.UUID
	PlayerID uuid.UUID
}

// StartDraft generates the full slot sequence for a scheduled room, moves it
// to in-progress, and arms the clock for the first pick.
func (e *Engine) StartDraft(ctx context.Context, roomID uuid.UUID) error {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room.Status != models.RoomStatusScheduled {
		return fmt.Errorf("room %s cannot start from status %s", roomID, room.Status)
	}

	entryOrder := room.Settings.DraftOrder
	if len(entryOrder) == 0 {
		entries, err := e.store.ListEntries(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		entryOrder = make([]uuid.UUID, len(entries))
		for i, entry := range entries {
			entryOrder[i] = entry.ID
		}
	}

	slots, err := order.Generate(order.Config{
		RoomID:             roomID,
		Entries:            entryOrder,
		Rounds:             room.Settings.Rounds,
		ThirdRoundReversal: room.Settings.ThirdRoundReversal,
		Linear:             room.Settings.LinearOrder,
	})
	if err != nil {
		return err
	}

	if err := e.store.CreatePickSlots(ctx, roomID, slots); err != nil {
		return fmt.Errorf("failed to create pick slots: %w", err)
	}

	room, err = e.store.UpdateRoomStatus(ctx, roomID, models.RoomStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to start room: %w", err)
	}

	startedAt := e.clock.Now()
	e.emit(ctx, roomID, events.TypeDraftStarted, events.DraftStartedPayload{
		RoomID:      roomID.String(),
		StartedAt:   startedAt,
		TotalRounds: room.Settings.Rounds,
		TotalPicks:  len(slots),
	})
	e.audit(ctx, roomID, "draft_started", fmt.Sprintf("%d slots generated", len(slots)))

	log.Info().
		Str("room_id", roomID.String()).
		Int("total_picks", len(slots)).
		Msg("draft started")

	return e.armClock(ctx, room, &slots[0], startedAt)
}

// SubmitPick validates and attempts to commit a human pick for the current
// slot. Exactly one attempt per slot ever succeeds; losers receive a routine
// rejection.
func (e *Engine) SubmitPick(ctx context.Context, in SubmitPickInput) (*models.PickSlot, error) {
	room, err := e.store.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if err := roomAcceptsPicks(room); err != nil {
		return nil, err
	}

	slot, err := e.store.NextPendingSlot(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDraftComplete
		}
		return nil, fmt.Errorf("failed to get current slot: %w", err)
	}
	if slot.EntryID != in.EntryID {
		return nil, ErrNotYourTurn
	}

	player, err := e.store.GetPlayer(ctx, in.PlayerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown player %s", ErrPlayerUnavailable, in.PlayerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	// Re-validated here at commit time; the roster may have changed since
	// the client checked.
	rostered, err := e.store.RosterPlayers(ctx, in.RoomID, in.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if err := roster.Validate(rostered, *player, room.Settings.Rules, room.Settings.Rounds); err != nil {
		return nil, err
	}

	return e.commitPick(ctx, room, slot, player, models.PickOriginHuman)
}

// HandleDeadline is invoked by the clock scheduler when a room's pick
// deadline expires. It computes the autopick against the live roster and
// funnels through the same conditional commit as human picks, so a human
// submission racing the clock resolves to whichever reached the store first.
func (e *Engine) HandleDeadline(ctx context.Context, roomID uuid.UUID) error {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room.Status != models.RoomStatusInProgress {
		log.Debug().
			Str("room_id", roomID.String()).
			Str("status", string(room.Status)).
			Msg("deadline fired for inactive room; ignoring")
		return nil
	}
	if room.NextDeadline != nil && e.clock.Now().Before(*room.NextDeadline) {
		// Deadline was pushed forward after this fire was queued.
		return nil
	}

	slot, err := e.store.NextPendingSlot(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.completeIfDone(ctx, room)
		}
		return fmt.Errorf("failed to get current slot: %w", err)
	}

	available, err := e.store.ListAvailablePlayers(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to list available players: %w", err)
	}
	rostered, err := e.store.RosterPlayers(ctx, roomID, slot.EntryID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	player, err := e.strategy.SelectPlayer(ctx, autopick.Selection{
		Room:      room,
		EntryID:   slot.EntryID,
		Available: available,
		Roster:    rostered,
	})
	if err != nil {
		if errors.Is(err, autopick.ErrNoneAvailable) {
			// Fatal room configuration problem; pause for manual
			// intervention rather than skip the slot.
			e.pauseForFailure(ctx, roomID, "autopick found no legal player")
			return fmt.Errorf("autopick exhausted for room %s: %w", roomID, err)
		}
		return fmt.Errorf("autopick selection failed: %w", err)
	}

	_, err = e.commitPick(ctx, room, slot, player, models.PickOriginAutopick)
	if err != nil {
		if isRoutineRejection(err) {
			// A human submission beat the clock to the store. By
			// construction this fire is now a no-op.
			log.Debug().
				Str("room_id", roomID.String()).
				Int("overall_pick", slot.OverallPick).
				Msg("autopick lost commit race to human pick")
			return nil
		}
		return err
	}

	log.Info().
		Str("room_id", roomID.String()).
		Str("entry_id", slot.EntryID.String()).
		Str("player_id", player.ID.String()).
		Int("overall_pick", slot.OverallPick).
		Msg("autopick committed")
	return nil
}

// commitPick performs the conditional commit with bounded retries on
// transient store failure, then advances the room on success.
func (e *Engine) commitPick(ctx context.Context, room *models.DraftRoom, slot *models.PickSlot, player *models.Player, origin models.PickOrigin) (*models.PickSlot, error) {
	input := store.CommitPickInput{
		RoomID:      room.ID,
		SlotID:      slot.ID,
		OverallPick: slot.OverallPick,
		EntryID:     slot.EntryID,
		PlayerID:    player.ID,
		Origin:      origin,
		PickedAt:    e.clock.Now(),
	}

	var committed *models.PickSlot
	var err error
	for attempt := 0; ; attempt++ {
		committed, err = e.store.CommitPick(ctx, input)
		if err == nil || store.IsConflict(err) || errors.Is(err, store.ErrNotFound) {
			break
		}
		if attempt >= e.maxCommitRetries {
			break
		}
		log.Warn().
			Err(err).
			Str("room_id", room.ID.String()).
			Int("overall_pick", slot.OverallPick).
			Int("attempt", attempt+1).
			Msg("transient commit failure; retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.clock.After(e.retryBackoff * time.Duration(attempt+1)):
		}
	}
	if err != nil {
		if errors.Is(err, store.ErrPlayerTaken) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerUnavailable, player.ID)
		}
		if errors.Is(err, store.ErrSlotTaken) || errors.Is(err, store.ErrConflict) {
			return nil, ErrLostRace
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLostRace
		}
		// Store unavailable through every retry. Pause the room rather
		// than risk a skipped or duplicated slot.
		e.pauseForFailure(ctx, room.ID, fmt.Sprintf("commit failed at pick %d", slot.OverallPick))
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	e.emit(ctx, room.ID, events.TypePickMade, events.PickMadePayload{
		SlotID:      committed.ID.String(),
		EntryID:     committed.EntryID.String(),
		PlayerID:    player.ID.String(),
		PlayerName:  player.FullName,
		Round:       committed.Round,
		Pick:        committed.Pick,
		OverallPick: committed.OverallPick,
		Origin:      string(origin),
		MadeAt:      input.PickedAt,
	})

	if err := e.advance(ctx, room); err != nil {
		// The pick itself is durable; advancing is retried by the next
		// scheduler poll if this fails.
		log.Error().
			Err(err).
			Str("room_id", room.ID.String()).
			Int("overall_pick", committed.OverallPick).
			Msg("failed to advance room after commit")
	}
	return committed, nil
}

// advance moves the room forward after a durable commit: either completes
// the draft or re-arms the clock for the new current slot. The clock is
// never re-armed speculatively.
func (e *Engine) advance(ctx context.Context, room *models.DraftRoom) error {
	next, err := e.store.NextPendingSlot(ctx, room.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.completeIfDone(ctx, room)
		}
		return fmt.Errorf("failed to get next slot: %w", err)
	}
	return e.armClock(ctx, room, next, e.clock.Now())
}

// armClock persists the next deadline, emits PickStarted, and wakes the
// scheduler in case the new deadline is sooner than the one it sleeps on.
func (e *Engine) armClock(ctx context.Context, room *models.DraftRoom, slot *models.PickSlot, baseTime time.Time) error {
	deadline := baseTime.Add(room.Settings.TimePerPick())
	if err := e.store.UpdateNextDeadline(ctx, room.ID, &deadline); err != nil {
		return fmt.Errorf("failed to update next deadline: %w", err)
	}

	e.emit(ctx, room.ID, events.TypePickStarted, events.PickStartedPayload{
		SlotID:         slot.ID.String(),
		EntryID:        slot.EntryID.String(),
		Round:          slot.Round,
		Pick:           slot.Pick,
		OverallPick:    slot.OverallPick,
		StartedAt:      baseTime,
		TimeoutAt:      deadline,
		TimePerPickSec: room.Settings.TimePerPickSec,
	})

	e.notifier.Wake()
	return nil
}

// completeIfDone finalizes the room once no pending slots remain.
func (e *Engine) completeIfDone(ctx context.Context, room *models.DraftRoom) error {
	remaining, err := e.store.CountRemainingSlots(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("failed to count remaining slots: %w", err)
	}
	if remaining > 0 {
		return nil
	}

	if _, err := e.store.UpdateRoomStatus(ctx, room.ID, models.RoomStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete room: %w", err)
	}
	if err := e.store.ClearNextDeadline(ctx, room.ID); err != nil {
		log.Error().Err(err).Str("room_id", room.ID.String()).Msg("failed to clear deadline for completed room")
	}

	slots, err := e.store.ListPickSlots(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("failed to list pick slots: %w", err)
	}
	e.emit(ctx, room.ID, events.TypeDraftCompleted, events.DraftCompletedPayload{
		RoomID:      room.ID.String(),
		CompletedAt: e.clock.Now(),
		TotalPicks:  len(slots),
	})
	e.audit(ctx, room.ID, "draft_completed", "")

	log.Info().Str("room_id", room.ID.String()).Msg("draft completed")
	return nil
}

// PauseRoom administratively pauses an in-progress room. The clock stops
// and submissions are rejected until the room resumes.
func (e *Engine) PauseRoom(ctx context.Context, roomID uuid.UUID, reason string) error {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room.Status != models.RoomStatusInProgress {
		return fmt.Errorf("room %s cannot pause from status %s", roomID, room.Status)
	}
	e.pause(ctx, roomID, reason)
	return nil
}

func (e *Engine) pause(ctx context.Context, roomID uuid.UUID, reason string) {
	if _, err := e.store.UpdateRoomStatus(ctx, roomID, models.RoomStatusPaused); err != nil {
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to pause room")
		return
	}
	if err := e.store.ClearNextDeadline(ctx, roomID); err != nil {
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to clear deadline for paused room")
	}
	e.emit(ctx, roomID, events.TypeDraftPaused, events.DraftPausedPayload{
		RoomID:   roomID.String(),
		PausedAt: e.clock.Now(),
		Reason:   reason,
	})
	log.Info().Str("room_id", roomID.String()).Str("reason", reason).Msg("room paused")
}

// pauseForFailure pauses a room after a fatal condition and records an
// audit entry for operators.
func (e *Engine) pauseForFailure(ctx context.Context, roomID uuid.UUID, reason string) {
	e.pause(ctx, roomID, reason)
	e.audit(ctx, roomID, "room_paused_on_failure", reason)
}

// ResumeRoom restarts a paused room. The current slot gets a fresh full
// duration; no partial-time carryover.
func (e *Engine) ResumeRoom(ctx context.Context, roomID uuid.UUID) error {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if room.Status != models.RoomStatusPaused {
		return fmt.Errorf("room %s cannot resume from status %s", roomID, room.Status)
	}

	room, err = e.store.UpdateRoomStatus(ctx, roomID, models.RoomStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to resume room: %w", err)
	}

	resumedAt := e.clock.Now()
	e.emit(ctx, roomID, events.TypeDraftResumed, events.DraftResumedPayload{
		RoomID:    roomID.String(),
		ResumedAt: resumedAt,
	})
	log.Info().Str("room_id", roomID.String()).Msg("room resumed")

	slot, err := e.store.NextPendingSlot(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.completeIfDone(ctx, room)
		}
		return fmt.Errorf("failed to get current slot: %w", err)
	}
	return e.armClock(ctx, room, slot, resumedAt)
}

// emit marshals and inserts an outbox event; delivery problems are logged,
// never allowed to fail the pick path.
func (e *Engine) emit(ctx context.Context, roomID uuid.UUID, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	switch eventType {
	case events.TypePickStarted:
		err = e.emitter.InsertPickStarted(ctx, roomID, data)
	case events.TypePickMade:
		err = e.emitter.InsertPickMade(ctx, roomID, data)
	case events.TypeDraftStarted:
		err = e.emitter.InsertDraftStarted(ctx, roomID, data)
	case events.TypeDraftPaused:
		err = e.emitter.InsertDraftPaused(ctx, roomID, data)
	case events.TypeDraftResumed:
		err = e.emitter.InsertDraftResumed(ctx, roomID, data)
	case events.TypeDraftCompleted:
		err = e.emitter.InsertDraftCompleted(ctx, roomID, data)
	default:
		err = fmt.Errorf("unknown event type %s", eventType)
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("room_id", roomID.String()).
			Str("event_type", eventType).
			Msg("failed to insert outbox event")
	}
}

// audit records a fire-and-forget observability entry.
func (e *Engine) audit(ctx context.Context, roomID uuid.UUID, action, detail string) {
	data, err := json.Marshal(events.AuditEntryPayload{
		RoomID:     roomID.String(),
		Action:     action,
		Detail:     detail,
		RecordedAt: e.clock.Now(),
	})
	if err != nil {
		return
	}
	if err := e.emitter.InsertAuditEntry(ctx, roomID, data); err != nil {
		log.Debug().Err(err).Str("room_id", roomID.String()).Msg("failed to insert audit entry")
	}
}

// roomAcceptsPicks maps room status to the rejection a submitter sees.
func roomAcceptsPicks(room *models.DraftRoom) error {
	switch room.Status {
	case models.RoomStatusInProgress:
		return nil
	case models.RoomStatusScheduled:
		return ErrRoomNotStarted
	case models.RoomStatusPaused:
		return ErrRoomPaused
	case models.RoomStatusCompleted:
		return ErrDraftComplete
	default:
		return fmt.Errorf("room in unknown status %s", room.Status)
	}
}

// isRoutineRejection reports whether err is an expected concurrency outcome
// rather than a failure.
func isRoutineRejection(err error) bool {
	return errors.Is(err, ErrLostRace) || errors.Is(err, ErrPlayerUnavailable)
}
