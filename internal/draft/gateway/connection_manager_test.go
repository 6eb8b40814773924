package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A reconnect against a replay window larger than the live send buffer must
// queue the whole backfill without blocking; the send channel is sized from
// the replay, not a fixed constant.
func TestBackfillLargerThanLiveBufferQueuesWithoutBlocking(t *testing.T) {
	window := 4 * liveSendBuffer
	seq := NewSequencer(window)
	roomID := uuid.New()
	for i := 1; i <= window; i++ {
		seq.Assign(roomID, makeEvent(roomID, i))
	}

	cm := NewConnectionManager(DefaultConnectionConfig(), seq, nil)

	type result struct {
		conn     *Connection
		replayed int
	}
	done := make(chan result, 1)
	go func() {
		conn, replayed := cm.newConnection(nil, uuid.New(), roomID, 0)
		done <- result{conn, replayed}
	}()

	select {
	case got := <-done:
		require.Equal(t, window, got.replayed)
		require.Len(t, got.conn.Send, window)

		// The backfill sits at the front of the channel in sequence order.
		var first RoomEvent
		require.NoError(t, json.Unmarshal(<-got.conn.Send, &first))
		assert.Equal(t, uint64(1), first.Seq)
	case <-time.After(time.Second):
		t.Fatal("queueing the backfill blocked")
	}
}
