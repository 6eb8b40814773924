package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/draft/events"
)

func newTestTimerBroadcaster(t *testing.T) (*TimerBroadcaster, *ConnectionManager, *clockwork.FakeClock) {
	t.Helper()
	cm := NewConnectionManager(DefaultConnectionConfig(), NewSequencer(8), nil)
	clock := clockwork.NewFakeClock()
	return NewTimerBroadcaster(cm, clock), cm, clock
}

func pickStartedPayload(t *testing.T, deadline time.Time) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(events.PickStartedPayload{
		SlotID:    uuid.New().String(),
		EntryID:   uuid.New().String(),
		TimeoutAt: deadline,
	})
	require.NoError(t, err)
	return data
}

func drainBroadcasts(cm *ConnectionManager) []broadcastMessage {
	var out []broadcastMessage
	for {
		select {
		case msg := <-cm.broadcastCh:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestTimerTicksWhilePickOnClock(t *testing.T) {
	tb, cm, clock := newTestTimerBroadcaster(t)
	roomID := uuid.New()

	deadline := clock.Now().Add(30 * time.Second)
	tb.Observe(roomID, EventTypePickStarted, pickStartedPayload(t, deadline))

	clock.Advance(10 * time.Second)
	tb.tick()

	msgs := drainBroadcasts(cm)
	require.Len(t, msgs, 1)
	assert.Equal(t, roomID, msgs[0].RoomID)
	assert.Equal(t, EventTypeTimerTick, msgs[0].Event.Type)

	var payload events.TimerTickPayload
	require.NoError(t, json.Unmarshal(msgs[0].Event.Data, &payload))
	assert.Equal(t, int64(20_000), payload.TimeRemainingMs)
}

func TestTimerStopsOnPause(t *testing.T) {
	tb, cm, clock := newTestTimerBroadcaster(t)
	roomID := uuid.New()

	deadline := clock.Now().Add(30 * time.Second)
	tb.Observe(roomID, EventTypePickStarted, pickStartedPayload(t, deadline))
	tb.Observe(roomID, EventTypeDraftPaused, nil)

	tb.tick()
	assert.Empty(t, drainBroadcasts(cm))
}

func TestTimerStopsPastDeadline(t *testing.T) {
	tb, cm, clock := newTestTimerBroadcaster(t)
	roomID := uuid.New()

	deadline := clock.Now().Add(5 * time.Second)
	tb.Observe(roomID, EventTypePickStarted, pickStartedPayload(t, deadline))

	clock.Advance(6 * time.Second)
	tb.tick()
	assert.Empty(t, drainBroadcasts(cm))

	// Once disarmed it stays disarmed until the next PickStarted.
	tb.tick()
	assert.Empty(t, drainBroadcasts(cm))
}

func TestTimerRearmsOnNextPick(t *testing.T) {
	tb, cm, clock := newTestTimerBroadcaster(t)
	roomID := uuid.New()

	tb.Observe(roomID, EventTypePickStarted, pickStartedPayload(t, clock.Now().Add(5*time.Second)))
	clock.Advance(6 * time.Second)
	tb.tick()
	require.Empty(t, drainBroadcasts(cm))

	tb.Observe(roomID, EventTypePickStarted, pickStartedPayload(t, clock.Now().Add(30*time.Second)))
	tb.tick()
	require.Len(t, drainBroadcasts(cm), 1)
}
