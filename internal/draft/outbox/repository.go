// Package outbox persists engine events and relays them to NATS JetStream.
// Events are written in commit order and published at-least-once; consumers
// deduplicate on event ID.
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/draftroom/internal/draft/events"
)

// Repository stores outbox rows in Postgres. It implements the engine's
// Emitter interface on the insert side and feeds the relay worker on the
// fetch side.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Postgres-backed outbox repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) insert(ctx context.Context, roomID uuid.UUID, eventType string, payload []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO outbox_events (id, room_id, event_type, payload, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		uuid.New(), roomID, eventType, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

func (r *Repository) InsertPickStarted(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypePickStarted, payload)
}

func (r *Repository) InsertPickMade(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypePickMade, payload)
}

func (r *Repository) InsertDraftStarted(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypeDraftStarted, payload)
}

func (r *Repository) InsertDraftPaused(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypeDraftPaused, payload)
}

func (r *Repository) InsertDraftResumed(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypeDraftResumed, payload)
}

func (r *Repository) InsertDraftCompleted(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypeDraftCompleted, payload)
}

func (r *Repository) InsertAuditEntry(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return r.insert(ctx, roomID, events.TypeAuditEntry, payload)
}

// FetchUnsent returns unsent events in insertion order. Concurrent relay
// instances may fetch overlapping batches; delivery is at-least-once and
// the broker deduplicates on the event ID carried as the message ID.
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, room_id, event_type, payload, created_at
		 FROM outbox_events
		 WHERE sent_at IS NULL
		 ORDER BY created_at, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.RoomID, &ev.EventType, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// MarkSent stamps an event as published.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_events SET sent_at = $2 WHERE id = $1`,
		id, sentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}
