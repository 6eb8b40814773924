// Package redis implements the draft store on Redis. The pick commit runs
// as a Lua script so the slot fill and the player claim land in one atomic
// step, mirroring the guarded UPDATE of the Postgres store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcdev12/draftroom/internal/draft/store"
	"github.com/mcdev12/draftroom/internal/models"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix    = "room:"
	playerKeyPrefix  = "player:"
	playerRankIndex  = "players:rank"
	deadlineIndexKey = "deadlines"

	// Bound on optimistic retries when room writers collide.
	maxRoomTxRetries = 5
)

// Config holds configuration for the Redis draft store.
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// Store implements the draft store contract using Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed draft store.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: cfg.RedisClient}, nil
}

var _ store.Store = (*Store)(nil)

func roomKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s%s", roomKeyPrefix, roomID)
}

func entriesKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s%s:entries", roomKeyPrefix, roomID)
}

func slotKey(roomID uuid.UUID, overall int) string {
	return fmt.Sprintf("%s%s:slot:%d", roomKeyPrefix, roomID, overall)
}

func slotCountKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s%s:slotcount", roomKeyPrefix, roomID)
}

func cursorKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s%s:cursor", roomKeyPrefix, roomID)
}

func claimsKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s%s:claims", roomKeyPrefix, roomID)
}

func playerKey(playerID uuid.UUID) string {
	return fmt.Sprintf("%s%s", playerKeyPrefix, playerID)
}

// commitPickScript fills the current slot and claims the player in one
// atomic step. Returns "OK" on success, "SLOT" when the slot is no longer
// current or already filled, "PLAYER" when the player is already claimed.
//
// KEYS[1] = cursor, KEYS[2] = claims set, KEYS[3] = slot
// ARGV[1] = overall pick, ARGV[2] = player ID, ARGV[3] = filled slot JSON,
// ARGV[4] = slot ID
var commitPickScript = redis.NewScript(`
local cursor = tonumber(redis.call('GET', KEYS[1]) or '0')
if cursor ~= tonumber(ARGV[1]) then
	return 'SLOT'
end
local raw = redis.call('GET', KEYS[3])
if not raw then
	return 'SLOT'
end
local slot = cjson.decode(raw)
if slot['id'] ~= ARGV[4] then
	return 'SLOT'
end
if slot['player_id'] then
	return 'SLOT'
end
if redis.call('SISMEMBER', KEYS[2], ARGV[2]) == 1 then
	return 'PLAYER'
end
redis.call('SET', KEYS[3], ARGV[3])
redis.call('SADD', KEYS[2], ARGV[2])
redis.call('INCR', KEYS[1])
return 'OK'
`)

func (s *Store) CreateRoom(ctx context.Context, room *models.DraftRoom) error {
	if room == nil {
		return errors.New("room cannot be nil")
	}
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	return s.saveRoom(ctx, room)
}

func (s *Store) saveRoom(ctx context.Context, room *models.DraftRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	if err := s.client.Set(ctx, roomKey(room.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

func (s *Store) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.DraftRoom, error) {
	raw, err := s.client.Get(ctx, roomKey(roomID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("room %s: %w", roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	var room models.DraftRoom
	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}

// updateRoom applies mutate to the room under WATCH/MULTI so two writers
// touching different fields of the room blob cannot overwrite each other.
// A writer that loses the race re-reads the fresh blob and reapplies its
// change. index, if set, adds commands to the same transaction.
func (s *Store) updateRoom(ctx context.Context, roomID uuid.UUID, mutate func(room *models.DraftRoom), index func(pipe redis.Pipeliner)) (*models.DraftRoom, error) {
	key := roomKey(roomID)
	var updated *models.DraftRoom

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("room %s: %w", roomID, store.ErrNotFound)
			}
			return fmt.Errorf("failed to get room: %w", err)
		}
		var room models.DraftRoom
		if err := json.Unmarshal([]byte(raw), &room); err != nil {
			return fmt.Errorf("failed to unmarshal room: %w", err)
		}

		mutate(&room)
		room.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if index != nil {
				index(pipe)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = &room
		return nil
	}

	for attempt := 0; attempt < maxRoomTxRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to update room %s: too many concurrent writers", roomID)
}

func (s *Store) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status models.RoomStatus) (*models.DraftRoom, error) {
	return s.updateRoom(ctx, roomID, func(room *models.DraftRoom) {
		now := time.Now().UTC()
		room.Status = status
		if status == models.RoomStatusInProgress && room.StartedAt == nil {
			started := now
			room.StartedAt = &started
		}
		if status == models.RoomStatusCompleted {
			completed := now
			room.CompletedAt = &completed
		}
	}, nil)
}

func (s *Store) CreateEntries(ctx context.Context, entries []models.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		pipe.RPush(ctx, entriesKey(entry.RoomID), data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create entries: %w", err)
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, roomID uuid.UUID) ([]models.Entry, error) {
	raws, err := s.client.LRange(ctx, entriesKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	out := make([]models.Entry, 0, len(raws))
	for _, raw := range raws {
		var entry models.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Store) CreatePlayers(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}
		pipe.Set(ctx, playerKey(p.ID), data, 0)
		pipe.ZAdd(ctx, playerRankIndex, redis.Z{
			Score:  float64(p.Rank),
			Member: p.ID.String(),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create players: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	raw, err := s.client.Get(ctx, playerKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	var p models.Player
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &p, nil
}

// ListAvailablePlayers returns the undrafted pool in rank order. Ties on
// rank fall back to player ID order, matching the rank index's
// lexicographic member ordering.
func (s *Store) ListAvailablePlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error) {
	ids, err := s.client.ZRange(ctx, playerRankIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read player rank index: %w", err)
	}

	claimed, err := s.client.SMembers(ctx, claimsKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read claimed players: %w", err)
	}
	claimedSet := make(map[string]struct{}, len(claimed))
	for _, id := range claimed {
		claimedSet[id] = struct{}{}
	}

	var out []models.Player
	for _, id := range ids {
		if _, taken := claimedSet[id]; taken {
			continue
		}
		playerID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad player id in rank index: %w", err)
		}
		p, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	// ZRANGE orders rank ties by member bytes; re-sort to guarantee
	// (rank, id) even if ranks were updated in place.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) RosterPlayers(ctx context.Context, roomID, entryID uuid.UUID) ([]models.Player, error) {
	slots, err := s.ListPickSlots(ctx, roomID)
	if err != nil {
		return nil, err
	}
	var out []models.Player
	for _, slot := range slots {
		if slot.EntryID != entryID || !slot.Filled() {
			continue
		}
		p, err := s.GetPlayer(ctx, *slot.PlayerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *Store) CreatePickSlots(ctx context.Context, roomID uuid.UUID, slots []models.PickSlot) error {
	if len(slots) == 0 {
		return errors.New("slots cannot be empty")
	}
	pipe := s.client.Pipeline()
	for _, slot := range slots {
		data, err := json.Marshal(slot)
		if err != nil {
			return fmt.Errorf("failed to marshal pick slot: %w", err)
		}
		pipe.Set(ctx, slotKey(roomID, slot.OverallPick), data, 0)
	}
	pipe.Set(ctx, slotCountKey(roomID), len(slots), 0)
	pipe.Set(ctx, cursorKey(roomID), 1, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create pick slots: %w", err)
	}
	return nil
}

func (s *Store) slotCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	raw, err := s.client.Get(ctx, slotCountKey(roomID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get slot count: %w", err)
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad slot count: %w", err)
	}
	return count, nil
}

func (s *Store) getSlot(ctx context.Context, roomID uuid.UUID, overall int) (*models.PickSlot, error) {
	raw, err := s.client.Get(ctx, slotKey(roomID, overall)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("slot %d in room %s: %w", overall, roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pick slot: %w", err)
	}
	var slot models.PickSlot
	if err := json.Unmarshal([]byte(raw), &slot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pick slot: %w", err)
	}
	return &slot, nil
}

func (s *Store) ListPickSlots(ctx context.Context, roomID uuid.UUID) ([]models.PickSlot, error) {
	count, err := s.slotCount(ctx, roomID)
	if err != nil {
		return nil, err
	}
	out := make([]models.PickSlot, 0, count)
	for overall := 1; overall <= count; overall++ {
		slot, err := s.getSlot(ctx, roomID, overall)
		if err != nil {
			return nil, err
		}
		out = append(out, *slot)
	}
	return out, nil
}

func (s *Store) cursor(ctx context.Context, roomID uuid.UUID) (int, error) {
	raw, err := s.client.Get(ctx, cursorKey(roomID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("room %s has no pick slots: %w", roomID, store.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get pick cursor: %w", err)
	}
	cursor, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad pick cursor: %w", err)
	}
	return cursor, nil
}

func (s *Store) NextPendingSlot(ctx context.Context, roomID uuid.UUID) (*models.PickSlot, error) {
	cursor, err := s.cursor(ctx, roomID)
	if err != nil {
		return nil, err
	}
	count, err := s.slotCount(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if cursor > count {
		return nil, fmt.Errorf("no pending slot in room %s: %w", roomID, store.ErrNotFound)
	}
	return s.getSlot(ctx, roomID, cursor)
}

func (s *Store) CountRemainingSlots(ctx context.Context, roomID uuid.UUID) (int, error) {
	cursor, err := s.cursor(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	count, err := s.slotCount(ctx, roomID)
	if err != nil {
		return 0, err
	}
	remaining := count - (cursor - 1)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CommitPick runs the atomic slot-fill-and-claim script. First writer wins;
// a losing writer gets ErrSlotTaken or ErrPlayerTaken depending on which
// condition failed.
func (s *Store) CommitPick(ctx context.Context, input store.CommitPickInput) (*models.PickSlot, error) {
	slot, err := s.getSlot(ctx, input.RoomID, input.OverallPick)
	if err != nil {
		return nil, err
	}

	origin := input.Origin
	pickedAt := input.PickedAt.UTC()
	filled := *slot
	filled.PlayerID = &input.PlayerID
	filled.Origin = &origin
	filled.PickedAt = &pickedAt

	data, err := json.Marshal(filled)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pick slot: %w", err)
	}

	keys := []string{cursorKey(input.RoomID), claimsKey(input.RoomID), slotKey(input.RoomID, input.OverallPick)}
	args := []interface{}{input.OverallPick, input.PlayerID.String(), string(data), input.SlotID.String()}

	result, err := commitPickScript.Run(ctx, s.client, keys, args...).Text()
	if err != nil {
		return nil, fmt.Errorf("failed to commit pick: %w", err)
	}

	switch result {
	case "OK":
		return &filled, nil
	case "PLAYER":
		return nil, fmt.Errorf("player %s in room %s: %w", input.PlayerID, input.RoomID, store.ErrPlayerTaken)
	default:
		return nil, fmt.Errorf("slot %d in room %s: %w", input.OverallPick, input.RoomID, store.ErrSlotTaken)
	}
}

func (s *Store) UpdateNextDeadline(ctx context.Context, roomID uuid.UUID, deadline *time.Time) error {
	_, err := s.updateRoom(ctx, roomID, func(room *models.DraftRoom) {
		room.NextDeadline = deadline
	}, func(pipe redis.Pipeliner) {
		if deadline == nil {
			pipe.ZRem(ctx, deadlineIndexKey, roomID.String())
		} else {
			pipe.ZAdd(ctx, deadlineIndexKey, redis.Z{
				Score:  float64(deadline.UnixMilli()),
				Member: roomID.String(),
			})
		}
	})
	if err != nil {
		return fmt.Errorf("failed to update next deadline: %w", err)
	}
	return nil
}

func (s *Store) ClearNextDeadline(ctx context.Context, roomID uuid.UUID) error {
	return s.UpdateNextDeadline(ctx, roomID, nil)
}

func (s *Store) FetchNextDeadline(ctx context.Context) (*store.NextDeadline, error) {
	zs, err := s.client.ZRangeWithScores(ctx, deadlineIndexKey, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch next deadline: %w", err)
	}
	if len(zs) == 0 {
		return nil, nil
	}
	roomID, err := uuid.Parse(zs[0].Member.(string))
	if err != nil {
		return nil, fmt.Errorf("bad room id in deadline index: %w", err)
	}
	deadline := time.UnixMilli(int64(zs[0].Score)).UTC()
	return &store.NextDeadline{RoomID: roomID, Deadline: &deadline}, nil
}

func (s *Store) FetchRoomsDueForPick(ctx context.Context, limit int32, now time.Time) ([]uuid.UUID, error) {
	ids, err := s.client.ZRangeByScore(ctx, deadlineIndexKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due rooms: %w", err)
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		roomID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad room id in deadline index: %w", err)
		}
		out = append(out, roomID)
	}
	return out, nil
}
