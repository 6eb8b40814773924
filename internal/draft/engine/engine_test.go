package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcdev12/draftroom/internal/draft/autopick"
	"github.com/mcdev12/draftroom/internal/draft/events"
	redisstore "github.com/mcdev12/draftroom/internal/draft/store/redis"
	"github.com/mcdev12/draftroom/internal/models"
)

// recordingEmitter captures emitted events in order for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	RoomID    uuid.UUID
	EventType string
	Payload   []byte
}

func (r *recordingEmitter) record(roomID uuid.UUID, eventType string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{RoomID: roomID, EventType: eventType, Payload: payload})
	return nil
}

func (r *recordingEmitter) InsertPickStarted(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypePickStarted, payload)
}

func (r *recordingEmitter) InsertPickMade(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypePickMade, payload)
}

func (r *recordingEmitter) InsertDraftStarted(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypeDraftStarted, payload)
}

func (r *recordingEmitter) InsertDraftPaused(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypeDraftPaused, payload)
}

func (r *recordingEmitter) InsertDraftResumed(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypeDraftResumed, payload)
}

func (r *recordingEmitter) InsertDraftCompleted(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypeDraftCompleted, payload)
}

func (r *recordingEmitter) InsertAuditEntry(_ context.Context, roomID uuid.UUID, payload []byte) error {
	return r.record(roomID, events.TypeAuditEntry, payload)
}

func (r *recordingEmitter) typesFor(roomID uuid.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		if ev.RoomID == roomID {
			out = append(out, ev.EventType)
		}
	}
	return out
}

func (r *recordingEmitter) countType(roomID uuid.UUID, eventType string) int {
	n := 0
	for _, t := range r.typesFor(roomID) {
		if t == eventType {
			n++
		}
	}
	return n
}

// wakeNotifier counts scheduler wakeups.
type wakeNotifier struct {
	mu    sync.Mutex
	wakes int
}

func (w *wakeNotifier) Wake() {
	w.mu.Lock()
	w.wakes++
	w.mu.Unlock()
}

func (w *wakeNotifier) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wakes
}

type EngineTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *goredis.Client
	store    *redisstore.Store
	emitter  *recordingEmitter
	notifier *wakeNotifier
	clock    *clockwork.FakeClock
	engine   *Engine

	roomID  uuid.UUID
	entries []models.Entry
	players []models.Player
}

func (s *EngineTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = goredis.NewClient(&goredis.Options{Addr: s.mr.Addr()})

	st, err := redisstore.NewStore(&redisstore.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.store = st

	s.emitter = &recordingEmitter{}
	s.notifier = &wakeNotifier{}
	s.clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC))

	s.engine = NewEngine(s.store, s.emitter, autopick.NewBestAvailable(), Config{
		MaxCommitRetries: 2,
		RetryBackoff:     10 * time.Millisecond,
		Clock:            s.clock,
		Notifier:         s.notifier,
	})

	s.roomID = uuid.New()
}

func (s *EngineTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// seedRoom creates a scheduled room with numEntries entries, rounds rounds,
// and a pool of playerCount players ranked 1..playerCount. Rules leave every
// slot open to any position.
func (s *EngineTestSuite) seedRoom(numEntries, rounds, playerCount int) {
	ctx := context.Background()

	s.entries = nil
	for i := 0; i < numEntries; i++ {
		s.entries = append(s.entries, models.Entry{
			ID:          uuid.New(),
			RoomID:      s.roomID,
			DisplayName: fmt.Sprintf("Team %d", i+1),
		})
	}

	draftOrder := make([]uuid.UUID, numEntries)
	for i, entry := range s.entries {
		draftOrder[i] = entry.ID
	}

	room := &models.DraftRoom{
		ID:     s.roomID,
		Name:   "engine test room",
		Status: models.RoomStatusScheduled,
		Settings: models.RoomSettings{
			Rounds:         rounds,
			TimePerPickSec: 30,
			DraftOrder:     draftOrder,
			Rules: models.RosterRules{
				BenchSlots: rounds,
			},
		},
	}
	s.Require().NoError(s.store.CreateRoom(ctx, room))
	s.Require().NoError(s.store.CreateEntries(ctx, s.entries))

	positions := []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE}
	s.players = nil
	for i := 0; i < playerCount; i++ {
		s.players = append(s.players, models.Player{
			ID:       uuid.New(),
			FullName: fmt.Sprintf("Player %d", i+1),
			Position: positions[i%len(positions)],
			Rank:     i + 1,
		})
	}
	s.Require().NoError(s.store.CreatePlayers(ctx, s.players))
}

func (s *EngineTestSuite) startDraft() {
	s.Require().NoError(s.engine.StartDraft(context.Background(), s.roomID))
}

func (s *EngineTestSuite) TestStartDraft() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	room, err := s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(models.RoomStatusInProgress, room.Status)
	s.Require().NotNil(room.NextDeadline)
	s.Equal(s.clock.Now().Add(30*time.Second), room.NextDeadline.UTC())

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.Require().Len(slots, 4)

	// Snake order for two entries over two rounds.
	s.Equal(s.entries[0].ID, slots[0].EntryID)
	s.Equal(s.entries[1].ID, slots[1].EntryID)
	s.Equal(s.entries[1].ID, slots[2].EntryID)
	s.Equal(s.entries[0].ID, slots[3].EntryID)

	types := s.emitter.typesFor(s.roomID)
	s.Contains(types, events.TypeDraftStarted)
	s.Contains(types, events.TypePickStarted)
	s.Equal(1, s.notifier.count())
}

func (s *EngineTestSuite) TestStartDraftRejectsNonScheduledRoom() {
	s.seedRoom(2, 2, 8)
	s.startDraft()

	err := s.engine.StartDraft(context.Background(), s.roomID)
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestSubmitPickCommitsAndAdvances() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	committed, err := s.engine.SubmitPick(ctx, SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: s.players[3].ID,
	})
	s.Require().NoError(err)
	s.Equal(1, committed.OverallPick)
	s.Equal(s.players[3].ID, *committed.PlayerID)
	s.Equal(models.PickOriginHuman, *committed.Origin)

	// Clock re-armed for the next slot.
	room, err := s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Require().NotNil(room.NextDeadline)

	next, err := s.store.NextPendingSlot(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(2, next.OverallPick)
	s.Equal(s.entries[1].ID, next.EntryID)

	s.Equal(1, s.emitter.countType(s.roomID, events.TypePickMade))
	// One PickStarted for slot 1 at start, one for slot 2 after commit.
	s.Equal(2, s.emitter.countType(s.roomID, events.TypePickStarted))
}

func (s *EngineTestSuite) TestSubmitPickOutOfTurn() {
	s.seedRoom(2, 2, 8)
	s.startDraft()

	_, err := s.engine.SubmitPick(context.Background(), SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[1].ID,
		PlayerID: s.players[0].ID,
	})
	s.Require().ErrorIs(err, ErrNotYourTurn)
	s.Equal(0, s.emitter.countType(s.roomID, events.TypePickMade))
}

func (s *EngineTestSuite) TestSubmitPickDuplicatePlayer() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	_, err := s.engine.SubmitPick(ctx, SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: s.players[0].ID,
	})
	s.Require().NoError(err)

	_, err = s.engine.SubmitPick(ctx, SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[1].ID,
		PlayerID: s.players[0].ID,
	})
	s.Require().ErrorIs(err, ErrPlayerUnavailable)
}

func (s *EngineTestSuite) TestSubmitPickUnknownPlayer() {
	s.seedRoom(2, 2, 8)
	s.startDraft()

	_, err := s.engine.SubmitPick(context.Background(), SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: uuid.New(),
	})
	s.Require().ErrorIs(err, ErrPlayerUnavailable)
}

func (s *EngineTestSuite) TestSubmitPickBeforeStart() {
	s.seedRoom(2, 2, 8)

	_, err := s.engine.SubmitPick(context.Background(), SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: s.players[0].ID,
	})
	s.Require().ErrorIs(err, ErrRoomNotStarted)
}

func (s *EngineTestSuite) TestConcurrentSubmitsExactlyOneWins() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.engine.SubmitPick(ctx, SubmitPickInput{
				RoomID:   s.roomID,
				EntryID:  s.entries[0].ID,
				PlayerID: s.players[i].ID,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		// Losers see a routine rejection, never a store failure.
		s.True(
			isRoutineRejection(err) || errors.Is(err, ErrNotYourTurn),
			"unexpected loser error: %v", err,
		)
	}
	s.Equal(1, wins)
	s.Equal(1, s.emitter.countType(s.roomID, events.TypePickMade))

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.Require().True(slots[0].Filled())
	s.False(slots[1].Filled())
}

func (s *EngineTestSuite) TestHandleDeadlineAutopicksBestAvailable() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	s.clock.Advance(31 * time.Second)
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.Require().True(slots[0].Filled())
	s.Equal(s.players[0].ID, *slots[0].PlayerID, "autopick takes the top-ranked player")
	s.Equal(models.PickOriginAutopick, *slots[0].Origin)
}

func (s *EngineTestSuite) TestHandleDeadlineBeforeExpiryIsNoOp() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	// Deadline is 30s out; a queued fire arriving early must not pick.
	s.clock.Advance(5 * time.Second)
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.False(slots[0].Filled())
}

func (s *EngineTestSuite) TestDoubleDeadlineFireFillsOneSlot() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	s.clock.Advance(31 * time.Second)
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))
	// The duplicate fire sees a fresh future deadline and does nothing.
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.True(slots[0].Filled())
	s.False(slots[1].Filled())
	s.Equal(1, s.emitter.countType(s.roomID, events.TypePickMade))
}

func (s *EngineTestSuite) TestDraftRunsToCompletionOnAutopicks() {
	s.seedRoom(2, 3, 10)
	s.startDraft()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		s.clock.Advance(31 * time.Second)
		s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))
	}

	room, err := s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(models.RoomStatusCompleted, room.Status)
	s.Nil(room.NextDeadline)

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	seen := make(map[uuid.UUID]bool)
	for _, slot := range slots {
		s.Require().True(slot.Filled(), "slot %d unfilled", slot.OverallPick)
		s.False(seen[*slot.PlayerID], "player drafted twice")
		seen[*slot.PlayerID] = true
	}

	s.Equal(6, s.emitter.countType(s.roomID, events.TypePickMade))
	s.Equal(1, s.emitter.countType(s.roomID, events.TypeDraftCompleted))
}

func (s *EngineTestSuite) TestPauseAndResume() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	s.Require().NoError(s.engine.PauseRoom(ctx, s.roomID, "commissioner pause"))

	room, err := s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(models.RoomStatusPaused, room.Status)
	s.Nil(room.NextDeadline)

	// Submissions and deadline fires are rejected while paused.
	_, err = s.engine.SubmitPick(ctx, SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: s.players[0].ID,
	})
	s.Require().ErrorIs(err, ErrRoomPaused)

	s.clock.Advance(time.Hour)
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))
	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.False(slots[0].Filled())

	// Resume restarts the current slot with a full fresh duration.
	s.Require().NoError(s.engine.ResumeRoom(ctx, s.roomID))
	room, err = s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(models.RoomStatusInProgress, room.Status)
	s.Require().NotNil(room.NextDeadline)
	s.Equal(s.clock.Now().Add(30*time.Second), room.NextDeadline.UTC())

	s.Equal(1, s.emitter.countType(s.roomID, events.TypeDraftPaused))
	s.Equal(1, s.emitter.countType(s.roomID, events.TypeDraftResumed))
}

func (s *EngineTestSuite) TestPauseRequiresInProgress() {
	s.seedRoom(2, 2, 8)

	err := s.engine.PauseRoom(context.Background(), s.roomID, "too early")
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestAutopickExhaustionPausesRoom() {
	s.seedRoom(2, 2, 0)
	s.startDraft()
	ctx := context.Background()

	s.clock.Advance(31 * time.Second)
	err := s.engine.HandleDeadline(ctx, s.roomID)
	s.Require().ErrorIs(err, autopick.ErrNoneAvailable)

	room, err := s.store.GetRoom(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(models.RoomStatusPaused, room.Status)
	s.Equal(1, s.emitter.countType(s.roomID, events.TypeDraftPaused))
}

func (s *EngineTestSuite) TestHumanBeatsClockThenClockFireIsNoOp() {
	s.seedRoom(2, 2, 8)
	s.startDraft()
	ctx := context.Background()

	// The deadline passes, but the human submission lands first.
	s.clock.Advance(31 * time.Second)
	_, err := s.engine.SubmitPick(ctx, SubmitPickInput{
		RoomID:   s.roomID,
		EntryID:  s.entries[0].ID,
		PlayerID: s.players[5].ID,
	})
	s.Require().NoError(err)

	// The queued clock fire for slot 1 arrives late and must not disturb
	// the committed pick or fill slot 2 out of band.
	s.Require().NoError(s.engine.HandleDeadline(ctx, s.roomID))

	slots, err := s.store.ListPickSlots(ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal(s.players[5].ID, *slots[0].PlayerID)
	s.Equal(models.PickOriginHuman, *slots[0].Origin)
	s.False(slots[1].Filled())
}
