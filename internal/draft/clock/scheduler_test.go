package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/draft/store"
)

// fakeDeadlineStore serves deadlines from memory; the handler clears them
// the way the engine does after a commit.
type fakeDeadlineStore struct {
	mu        sync.Mutex
	deadlines map[uuid.UUID]time.Time
}

func newFakeDeadlineStore() *fakeDeadlineStore {
	return &fakeDeadlineStore{deadlines: make(map[uuid.UUID]time.Time)}
}

func (f *fakeDeadlineStore) set(roomID uuid.UUID, deadline time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadlines[roomID] = deadline
}

func (f *fakeDeadlineStore) clear(roomID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.deadlines, roomID)
}

func (f *fakeDeadlineStore) FetchNextDeadline(_ context.Context) (*store.NextDeadline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *store.NextDeadline
	for roomID, deadline := range f.deadlines {
		d := deadline
		if best == nil || d.Before(*best.Deadline) {
			best = &store.NextDeadline{RoomID: roomID, Deadline: &d}
		}
	}
	return best, nil
}

func (f *fakeDeadlineStore) FetchRoomsDueForPick(_ context.Context, limit int32, now time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for roomID, deadline := range f.deadlines {
		if !deadline.After(now) {
			out = append(out, roomID)
			if int32(len(out)) >= limit {
				break
			}
		}
	}
	return out, nil
}

// recordingHandler reports each handled room on a channel and clears its
// deadline.
type recordingHandler struct {
	store   *fakeDeadlineStore
	handled chan uuid.UUID
	block   chan struct{} // when non-nil, handler waits on it
}

func (h *recordingHandler) HandleDeadline(ctx context.Context, roomID uuid.UUID) error {
	if h.block != nil {
		select {
		case <-h.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	h.store.clear(roomID)
	select {
	case h.handled <- roomID:
	case <-ctx.Done():
	}
	return nil
}

func runScheduler(t *testing.T, s *Scheduler) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("scheduler did not stop")
		}
	})
	return cancel
}

func awaitHandled(t *testing.T, ch chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case roomID := <-ch:
		return roomID
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for deadline handling")
		return uuid.Nil
	}
}

func TestSchedulerDispatchesDueRoom(t *testing.T) {
	fs := newFakeDeadlineStore()
	handler := &recordingHandler{store: fs, handled: make(chan uuid.UUID, 4)}

	roomID := uuid.New()
	fs.set(roomID, time.Now().Add(-time.Second))

	s := NewScheduler(fs, handler, Config{BatchSize: 5, NumWorkers: 2, IdlePoll: 20 * time.Millisecond})
	runScheduler(t, s)

	assert.Equal(t, roomID, awaitHandled(t, handler.handled))
}

func TestSchedulerSleepsUntilDeadline(t *testing.T) {
	fs := newFakeDeadlineStore()
	handler := &recordingHandler{store: fs, handled: make(chan uuid.UUID, 4)}

	roomID := uuid.New()
	fs.set(roomID, time.Now().Add(150*time.Millisecond))

	s := NewScheduler(fs, handler, Config{BatchSize: 5, NumWorkers: 2, IdlePoll: time.Minute})
	runScheduler(t, s)

	select {
	case <-handler.handled:
		t.Fatal("room handled before its deadline")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, roomID, awaitHandled(t, handler.handled))
}

func TestSchedulerWakeInterruptsIdle(t *testing.T) {
	fs := newFakeDeadlineStore()
	handler := &recordingHandler{store: fs, handled: make(chan uuid.UUID, 4)}

	// Long idle poll: without Wake the scheduler would sleep for a minute.
	s := NewScheduler(fs, handler, Config{BatchSize: 5, NumWorkers: 2, IdlePoll: time.Minute})
	runScheduler(t, s)

	// Let the scheduler reach its idle sleep, then arm a room and wake it.
	time.Sleep(50 * time.Millisecond)
	roomID := uuid.New()
	fs.set(roomID, time.Now())
	s.Wake()

	assert.Equal(t, roomID, awaitHandled(t, handler.handled))
}

func TestSchedulerDoesNotDoubleDispatchInFlightRoom(t *testing.T) {
	fs := newFakeDeadlineStore()
	block := make(chan struct{})
	handler := &recordingHandler{store: fs, handled: make(chan uuid.UUID, 4), block: block}

	roomID := uuid.New()
	fs.set(roomID, time.Now().Add(-time.Second))

	s := NewScheduler(fs, handler, Config{BatchSize: 5, NumWorkers: 2, IdlePoll: 10 * time.Millisecond})
	runScheduler(t, s)

	// The handler blocks while the scheduler keeps polling the still-due
	// room; the in-flight guard must prevent a second dispatch.
	time.Sleep(100 * time.Millisecond)
	close(block)

	require.Equal(t, roomID, awaitHandled(t, handler.handled))
	select {
	case extra := <-handler.handled:
		t.Fatalf("room %s dispatched twice", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerHandlesMultipleRooms(t *testing.T) {
	fs := newFakeDeadlineStore()
	handler := &recordingHandler{store: fs, handled: make(chan uuid.UUID, 8)}

	want := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		roomID := uuid.New()
		want[roomID] = true
		fs.set(roomID, time.Now().Add(-time.Second))
	}

	s := NewScheduler(fs, handler, Config{BatchSize: 5, NumWorkers: 3, IdlePoll: 20 * time.Millisecond})
	runScheduler(t, s)

	got := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		got[awaitHandled(t, handler.handled)] = true
	}
	assert.Equal(t, want, got)
}
