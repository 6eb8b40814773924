// Package postgres implements the draft store on PostgreSQL. The pick
// commit is a single guarded UPDATE plus a partial unique index on
// (room_id, player_id), so a slot and a player are claimed together or not
// at all and duplicate commits are structurally impossible.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/draftroom/internal/draft/store"
	"github.com/mcdev12/draftroom/internal/models"
)

const uniqueViolation = "23505"

// Store is a Postgres-backed draft store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a store over an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ store.Store = (*Store)(nil)

func (s *Store) CreateRoom(ctx context.Context, room *models.DraftRoom) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO draft_rooms (id, name, status, settings, scheduled_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		room.ID, room.Name, room.Status, room.Settings, room.ScheduledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *Store) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.DraftRoom, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, status, settings, next_deadline, scheduled_at, started_at, completed_at, created_at, updated_at
		 FROM draft_rooms WHERE id = $1`,
		roomID,
	)
	var room models.DraftRoom
	err := row.Scan(&room.ID, &room.Name, &room.Status, &room.Settings, &room.NextDeadline,
		&room.ScheduledAt, &room.StartedAt, &room.CompletedAt, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("room %s: %w", roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (s *Store) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status models.RoomStatus) (*models.DraftRoom, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE draft_rooms SET
			status = $2,
			started_at = CASE WHEN $2 = 'IN_PROGRESS' AND started_at IS NULL THEN now() ELSE started_at END,
			completed_at = CASE WHEN $2 = 'COMPLETED' THEN now() ELSE completed_at END,
			updated_at = now()
		 WHERE id = $1`,
		roomID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("room %s: %w", roomID, store.ErrNotFound)
	}
	return s.GetRoom(ctx, roomID)
}

func (s *Store) CreateEntries(ctx context.Context, entries []models.Entry) error {
	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(
			`INSERT INTO entries (id, room_id, display_name, created_at) VALUES ($1, $2, $3, now())`,
			entry.ID, entry.RoomID, entry.DisplayName,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to create entries: %w", err)
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, roomID uuid.UUID) ([]models.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, room_id, display_name, created_at FROM entries WHERE room_id = $1 ORDER BY created_at, id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		var entry models.Entry
		if err := rows.Scan(&entry.ID, &entry.RoomID, &entry.DisplayName, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) CreatePlayers(ctx context.Context, players []models.Player) error {
	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(
			`INSERT INTO players (id, full_name, position, team, rank)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET full_name = $2, position = $3, team = $4, rank = $5`,
			p.ID, p.FullName, p.Position, p.Team, p.Rank,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to create players: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, full_name, position, team, rank FROM players WHERE id = $1`,
		playerID,
	)
	var p models.Player
	if err := row.Scan(&p.ID, &p.FullName, &p.Position, &p.Team, &p.Rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (s *Store) ListAvailablePlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.full_name, p.position, p.team, p.rank
		 FROM players p
		 WHERE NOT EXISTS (
			SELECT 1 FROM pick_slots ps
			WHERE ps.room_id = $1 AND ps.player_id = p.id
		 )
		 ORDER BY p.rank, p.id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *Store) RosterPlayers(ctx context.Context, roomID, entryID uuid.UUID) ([]models.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.full_name, p.position, p.team, p.rank
		 FROM pick_slots ps
		 JOIN players p ON p.id = ps.player_id
		 WHERE ps.room_id = $1 AND ps.entry_id = $2 AND ps.player_id IS NOT NULL
		 ORDER BY ps.overall_pick`,
		roomID, entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows pgx.Rows) ([]models.Player, error) {
	var out []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Position, &p.Team, &p.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreatePickSlots(ctx context.Context, roomID uuid.UUID, slots []models.PickSlot) error {
	batch := &pgx.Batch{}
	for _, slot := range slots {
		batch.Queue(
			`INSERT INTO pick_slots (id, room_id, round, pick, overall_pick, entry_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			slot.ID, roomID, slot.Round, slot.Pick, slot.OverallPick, slot.EntryID,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to create pick slots: %w", err)
	}
	return nil
}

func (s *Store) ListPickSlots(ctx context.Context, roomID uuid.UUID) ([]models.PickSlot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, room_id, round, pick, overall_pick, entry_id, player_id, origin, picked_at
		 FROM pick_slots WHERE room_id = $1 ORDER BY overall_pick`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pick slots: %w", err)
	}
	defer rows.Close()

	var out []models.PickSlot
	for rows.Next() {
		var slot models.PickSlot
		if err := rows.Scan(&slot.ID, &slot.RoomID, &slot.Round, &slot.Pick, &slot.OverallPick,
			&slot.EntryID, &slot.PlayerID, &slot.Origin, &slot.PickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick slot: %w", err)
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func (s *Store) NextPendingSlot(ctx context.Context, roomID uuid.UUID) (*models.PickSlot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, room_id, round, pick, overall_pick, entry_id, player_id, origin, picked_at
		 FROM pick_slots
		 WHERE room_id = $1 AND player_id IS NULL
		 ORDER BY overall_pick
		 LIMIT 1`,
		roomID,
	)
	var slot models.PickSlot
	err := row.Scan(&slot.ID, &slot.RoomID, &slot.Round, &slot.Pick, &slot.OverallPick,
		&slot.EntryID, &slot.PlayerID, &slot.Origin, &slot.PickedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no pending slot in room %s: %w", roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get next pending slot: %w", err)
	}
	return &slot, nil
}

func (s *Store) CountRemainingSlots(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM pick_slots WHERE room_id = $1 AND player_id IS NULL`,
		roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count remaining slots: %w", err)
	}
	return count, nil
}

// CommitPick is the conditional write at the heart of the engine. The
// UPDATE applies only while the slot is unfilled, is the lowest pending
// slot of the room, and the player has no committed pick; the partial
// unique index on (room_id, player_id) backstops the player check under
// concurrency.
func (s *Store) CommitPick(ctx context.Context, input store.CommitPickInput) (*models.PickSlot, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE pick_slots SET player_id = $1, origin = $2, picked_at = $3
		 WHERE id = $4 AND room_id = $5 AND player_id IS NULL
		   AND overall_pick = (
			SELECT min(overall_pick) FROM pick_slots
			WHERE room_id = $5 AND player_id IS NULL
		   )
		   AND NOT EXISTS (
			SELECT 1 FROM pick_slots
			WHERE room_id = $5 AND player_id = $1
		   )`,
		input.PlayerID, input.Origin, input.PickedAt, input.SlotID, input.RoomID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("player %s in room %s: %w", input.PlayerID, input.RoomID, store.ErrPlayerTaken)
		}
		return nil, fmt.Errorf("failed to commit pick: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, s.classifyConflict(ctx, input)
	}

	slot, err := s.getSlot(ctx, input.SlotID)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// classifyConflict distinguishes which condition of the guarded UPDATE
// failed so the engine can report the right rejection.
func (s *Store) classifyConflict(ctx context.Context, input store.CommitPickInput) error {
	var claimed bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pick_slots WHERE room_id = $1 AND player_id = $2)`,
		input.RoomID, input.PlayerID,
	).Scan(&claimed)
	if err == nil && claimed {
		return fmt.Errorf("player %s in room %s: %w", input.PlayerID, input.RoomID, store.ErrPlayerTaken)
	}

	slot, err := s.getSlot(ctx, input.SlotID)
	if err != nil {
		return err
	}
	if slot.Filled() {
		return fmt.Errorf("slot %d in room %s: %w", slot.OverallPick, input.RoomID, store.ErrSlotTaken)
	}
	// Slot exists and is unfilled but was not the current slot.
	return fmt.Errorf("slot %d in room %s is not current: %w", slot.OverallPick, input.RoomID, store.ErrConflict)
}

func (s *Store) getSlot(ctx context.Context, slotID uuid.UUID) (*models.PickSlot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, room_id, round, pick, overall_pick, entry_id, player_id, origin, picked_at
		 FROM pick_slots WHERE id = $1`,
		slotID,
	)
	var slot models.PickSlot
	err := row.Scan(&slot.ID, &slot.RoomID, &slot.Round, &slot.Pick, &slot.OverallPick,
		&slot.EntryID, &slot.PlayerID, &slot.Origin, &slot.PickedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %s: %w", slotID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pick slot: %w", err)
	}
	return &slot, nil
}

func (s *Store) UpdateNextDeadline(ctx context.Context, roomID uuid.UUID, deadline *time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE draft_rooms SET next_deadline = $2, updated_at = now() WHERE id = $1`,
		roomID, deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to update next deadline: %w", err)
	}
	return nil
}

func (s *Store) ClearNextDeadline(ctx context.Context, roomID uuid.UUID) error {
	return s.UpdateNextDeadline(ctx, roomID, nil)
}

func (s *Store) FetchNextDeadline(ctx context.Context) (*store.NextDeadline, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, next_deadline FROM draft_rooms
		 WHERE status = 'IN_PROGRESS' AND next_deadline IS NOT NULL
		 ORDER BY next_deadline
		 LIMIT 1`,
	)
	var nd store.NextDeadline
	if err := row.Scan(&nd.RoomID, &nd.Deadline); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch next deadline: %w", err)
	}
	return &nd, nil
}

func (s *Store) FetchRoomsDueForPick(ctx context.Context, limit int32, now time.Time) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM draft_rooms
		 WHERE status = 'IN_PROGRESS' AND next_deadline IS NOT NULL AND next_deadline <= $1
		 ORDER BY next_deadline
		 LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due rooms: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan room id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
