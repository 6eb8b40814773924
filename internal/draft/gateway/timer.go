package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/events"
)

type activeTimer struct {
	slotID   string
	entryID  string
	deadline time.Time
}

// TimerBroadcaster derives per-room countdowns from the event flow and
// broadcasts one TimerTick per second while a pick is on the clock.
type TimerBroadcaster struct {
	cm    *ConnectionManager
	clock clockwork.Clock

	mu     sync.Mutex
	active map[uuid.UUID]*activeTimer
}

// NewTimerBroadcaster creates a timer broadcaster over the connection
// manager.
func NewTimerBroadcaster(cm *ConnectionManager, clock clockwork.Clock) *TimerBroadcaster {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TimerBroadcaster{
		cm:     cm,
		clock:  clock,
		active: make(map[uuid.UUID]*activeTimer),
	}
}

// Observe updates countdown state from the sequenced event flow. PickStarted
// arms the room's countdown; pause and completion disarm it. PickMade is
// deliberately ignored since the following PickStarted re-arms with the next
// deadline.
func (t *TimerBroadcaster) Observe(roomID uuid.UUID, eventType EventType, payload json.RawMessage) {
	switch eventType {
	case EventTypePickStarted:
		var p events.PickStartedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			log.Debug().Err(err).Msg("failed to parse PickStarted payload for timer")
			return
		}
		t.mu.Lock()
		t.active[roomID] = &activeTimer{
			slotID:   p.SlotID,
			entryID:  p.EntryID,
			deadline: p.TimeoutAt,
		}
		t.mu.Unlock()

	case EventTypeDraftPaused, EventTypeDraftCompleted:
		t.mu.Lock()
		delete(t.active, roomID)
		t.mu.Unlock()
	}
}

// Run broadcasts ticks until the context ends.
func (t *TimerBroadcaster) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			t.tick()
		}
	}
}

func (t *TimerBroadcaster) tick() {
	now := t.clock.Now()

	t.mu.Lock()
	type pending struct {
		roomID uuid.UUID
		timer  activeTimer
	}
	var due []pending
	for roomID, timer := range t.active {
		remaining := timer.deadline.Sub(now)
		if remaining < 0 {
			// The engine's autopick will fire; stop ticking at zero.
			delete(t.active, roomID)
			continue
		}
		due = append(due, pending{roomID: roomID, timer: *timer})
	}
	t.mu.Unlock()

	for _, p := range due {
		remaining := p.timer.deadline.Sub(now)
		data, err := json.Marshal(events.TimerTickPayload{
			SlotID:          p.timer.slotID,
			EntryID:         p.timer.entryID,
			TimeRemainingMs: remaining.Milliseconds(),
			TickedAt:        now,
		})
		if err != nil {
			continue
		}
		t.cm.BroadcastToRoom(p.roomID, &RoomEvent{
			ID:        uuid.New().String(),
			RoomID:    p.roomID.String(),
			Type:      EventTypeTimerTick,
			Timestamp: now,
			Data:      data,
		})
	}
}
