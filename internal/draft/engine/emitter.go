package engine

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_emitter.go github.com/mcdev12/draftroom/internal/draft/engine Emitter

// Emitter defines what the engine needs from the outbox: durable,
// append-only event records that a relay publishes to the bus in commit
// order.
type Emitter interface {
	InsertPickStarted(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertPickMade(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertDraftStarted(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertDraftPaused(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertDraftResumed(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertDraftCompleted(ctx context.Context, roomID uuid.UUID, payload []byte) error
	InsertAuditEntry(ctx context.Context, roomID uuid.UUID, payload []byte) error
}

// Notifier wakes the clock scheduler when a sooner deadline is written.
type Notifier interface {
	Wake()
}

type noopNotifier struct{}

func (noopNotifier) Wake() {}
