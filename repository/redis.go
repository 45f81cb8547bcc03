package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/multierr"

	"go-splendor/config"
	"go-splendor/entities"
)

var ErrSnapshotNotFound = errors.New("room snapshot not found")

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

func stateKey(roomID string) string {
	return fmt.Sprintf("room:%s:state", roomID)
}

// RedisGameRepository keeps one JSON snapshot per room.
type RedisGameRepository struct {
	rdb *redis.Client
}

func NewRedisGameRepository(rdb *redis.Client) *RedisGameRepository {
	return &RedisGameRepository{rdb: rdb}
}

func (r *RedisGameRepository) Save(ctx context.Context, snap entities.RoomSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode room %s: %w", snap.Room.RoomID, err)
	}
	if err := r.rdb.Set(ctx, stateKey(snap.Room.RoomID), data, 0).Err(); err != nil {
		return fmt.Errorf("save room %s: %w", snap.Room.RoomID, err)
	}
	return nil
}

func (r *RedisGameRepository) Load(ctx context.Context, roomID string) (entities.RoomSnapshot, error) {
	data, err := r.rdb.Get(ctx, stateKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.RoomSnapshot{}, fmt.Errorf("room %s: %w", roomID, ErrSnapshotNotFound)
	}
	if err != nil {
		return entities.RoomSnapshot{}, fmt.Errorf("load room %s: %w", roomID, err)
	}
	return decodeSnapshot(data)
}

func (r *RedisGameRepository) Delete(ctx context.Context, roomID string) error {
	if err := r.rdb.Del(ctx, stateKey(roomID)).Err(); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}

// List returns every stored snapshot that decodes. Keys that fail to decode
// are reported through corrupt and left in place; err is only set when the
// keys could not be read at all.
func (r *RedisGameRepository) List(ctx context.Context) (snaps []entities.RoomSnapshot, corrupt error, err error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.rdb.Scan(ctx, cursor, "room:*:state", 100).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("scan rooms: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil, nil, nil
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("load rooms: %w", err)
	}
	snaps, corrupt = decodeAll(keys, values)
	return snaps, corrupt, nil
}

func decodeAll(keys []string, values []interface{}) ([]entities.RoomSnapshot, error) {
	var (
		snaps []entities.RoomSnapshot
		errs  []error
	)
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // deleted between scan and get
		}
		snap, err := decodeSnapshot([]byte(s))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", keys[i], err))
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, multierr.Combine(errs...)
}

func decodeSnapshot(data []byte) (entities.RoomSnapshot, error) {
	var snap entities.RoomSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return entities.RoomSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
