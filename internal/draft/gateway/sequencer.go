package gateway

import (
	"sync"

	"github.com/google/uuid"
)

// Sequencer assigns per-room monotonic sequence numbers and keeps a bounded
// replay window so reconnecting clients can backfill missed events instead
// of resyncing full state.
type Sequencer struct {
	mu         sync.Mutex
	rooms      map[uuid.UUID]*roomLog
	windowSize int
}

type roomLog struct {
	lastSeq uint64
	// ring holds the most recent windowSize events in seq order.
	ring  []RoomEvent
	start int
	count int
}

// NewSequencer creates a sequencer retaining windowSize events per room.
func NewSequencer(windowSize int) *Sequencer {
	if windowSize <= 0 {
		windowSize = 256
	}
	return &Sequencer{
		rooms:      make(map[uuid.UUID]*roomLog),
		windowSize: windowSize,
	}
}

// Assign stamps the event with the room's next sequence number and records
// it in the replay window. Events must be assigned in delivery order; the
// single consumer goroutine guarantees that.
func (s *Sequencer) Assign(roomID uuid.UUID, event *RoomEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rl := s.rooms[roomID]
	if rl == nil {
		rl = &roomLog{ring: make([]RoomEvent, s.windowSize)}
		s.rooms[roomID] = rl
	}

	rl.lastSeq++
	event.Seq = rl.lastSeq

	idx := (rl.start + rl.count) % len(rl.ring)
	if rl.count == len(rl.ring) {
		rl.start = (rl.start + 1) % len(rl.ring)
		idx = (rl.start + rl.count - 1) % len(rl.ring)
	} else {
		rl.count++
	}
	rl.ring[idx] = *event
}

// Replay returns the retained events with Seq > afterSeq, in order. The
// second return is false when the window no longer reaches back to afterSeq
// and the client must resync full state instead.
func (s *Sequencer) Replay(roomID uuid.UUID, afterSeq uint64) ([]RoomEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rl := s.rooms[roomID]
	if rl == nil {
		return nil, afterSeq == 0
	}
	if afterSeq >= rl.lastSeq {
		return nil, true
	}

	oldest := rl.lastSeq - uint64(rl.count) + 1
	if afterSeq+1 < oldest {
		return nil, false
	}

	out := make([]RoomEvent, 0, rl.lastSeq-afterSeq)
	for i := 0; i < rl.count; i++ {
		ev := rl.ring[(rl.start+i)%len(rl.ring)]
		if ev.Seq > afterSeq {
			out = append(out, ev)
		}
	}
	return out, true
}

// LastSeq returns the highest sequence number assigned for a room.
func (s *Sequencer) LastSeq(roomID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rl := s.rooms[roomID]; rl != nil {
		return rl.lastSeq
	}
	return 0
}

// Drop releases a room's replay window, for completed rooms.
func (s *Sequencer) Drop(roomID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}
