// Package store defines the durable storage contract for the draft engine.
// The store's conditional-write primitive is the single arbiter of which
// pick attempt wins a slot; the engine holds no authoritative in-memory
// state, so any process instance can serve any room.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/mcdev12/draftroom/internal/draft/store Store

var (
	// ErrNotFound is returned when a room, slot, entry, or player does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken means the slot was already filled, or is no longer the
	// current slot, when the conditional commit applied.
	ErrSlotTaken = errors.New("pick slot already filled")

	// ErrPlayerTaken means the player already belongs to a committed pick
	// in the room.
	ErrPlayerTaken = errors.New("player already claimed")

	// ErrConflict is returned when an optimistic write lost to a
	// concurrent update of the same record.
	ErrConflict = errors.New("conflicting write")
)

// CommitPickInput describes one atomic pick attempt. The store must fill the
// slot and claim the player together or not at all, and only while the slot
// is the lowest-numbered pending slot of the room.
type CommitPickInput struct {
	RoomID      uuid.UUID
	SlotID      uuid.UUID
	OverallPick int
	EntryID     uuid.UUID
	PlayerID    uuid.UUID
	Origin      models.PickOrigin
	PickedAt    time.Time
}

// NextDeadline pairs a room with its soonest pick deadline, for the clock
// scheduler.
type NextDeadline struct {
	RoomID   uuid.UUID
	Deadline *time.Time
}

// Store is the durable backend consumed by the engine and clock scheduler.
type Store interface {
	// Rooms and entries.
	CreateRoom(ctx context.Context, room *models.DraftRoom) error
	GetRoom(ctx context.Context, roomID uuid.UUID) (*models.DraftRoom, error)
	UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status models.RoomStatus) (*models.DraftRoom, error)
	CreateEntries(ctx context.Context, entries []models.Entry) error
	ListEntries(ctx context.Context, roomID uuid.UUID) ([]models.Entry, error)

	// Player pool.
	CreatePlayers(ctx context.Context, players []models.Player) error
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error)
	ListAvailablePlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error)
	RosterPlayers(ctx context.Context, roomID, entryID uuid.UUID) ([]models.Player, error)

	// Pick slots and the conditional commit.
	CreatePickSlots(ctx context.Context, roomID uuid.UUID, slots []models.PickSlot) error
	ListPickSlots(ctx context.Context, roomID uuid.UUID) ([]models.PickSlot, error)
	NextPendingSlot(ctx context.Context, roomID uuid.UUID) (*models.PickSlot, error)
	CountRemainingSlots(ctx context.Context, roomID uuid.UUID) (int, error)

	// CommitPick performs the atomic conditional write: create the pick
	// record for the slot only if the slot is pending, current, and the
	// player is unclaimed. First writer wins; losers get ErrSlotTaken or
	// ErrPlayerTaken.
	CommitPick(ctx context.Context, input CommitPickInput) (*models.PickSlot, error)

	// Deadline bookkeeping for the clock scheduler.
	UpdateNextDeadline(ctx context.Context, roomID uuid.UUID, deadline *time.Time) error
	ClearNextDeadline(ctx context.Context, roomID uuid.UUID) error
	FetchNextDeadline(ctx context.Context) (*NextDeadline, error)
	FetchRoomsDueForPick(ctx context.Context, limit int32, now time.Time) ([]uuid.UUID, error)
}

// IsConflict reports whether err is a routine commit-race loss rather than
// a store failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrPlayerTaken) || errors.Is(err, ErrConflict)
}
