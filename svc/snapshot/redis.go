package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultHistory = 20

// RedisClient is the subset of go-redis used by RedisStore.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisStore keeps the latest snapshot under <prefix>:snapshot:latest and a
// bounded history list under <prefix>:snapshot:history.
type RedisStore struct {
	client  RedisClient
	latest  string
	history string
	ttl     time.Duration
	keep    int64
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL expires the latest snapshot after d. Zero keeps it forever.
func WithTTL(d time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = d }
}

// WithHistory sets how many snapshots the history list keeps.
func WithHistory(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.keep = int64(n)
		}
	}
}

// NewRedisStore creates a RedisStore with keys under prefix.
func NewRedisStore(client RedisClient, prefix string, opts ...RedisOption) *RedisStore {
	if prefix == "" {
		prefix = "dataguard"
	}
	s := &RedisStore{
		client:  client,
		latest:  prefix + ":snapshot:latest",
		history: prefix + ":snapshot:history",
		keep:    defaultHistory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish sets the latest key and pushes onto the trimmed history list.
func (s *RedisStore) Publish(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	if err := s.client.Set(ctx, s.latest, data, s.ttl).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	if err := s.client.LPush(ctx, s.history, data).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	if err := s.client.LTrim(ctx, s.history, 0, s.keep-1).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Latest returns the newest snapshot or ErrNotFound.
func (s *RedisStore) Latest(ctx context.Context) (Snapshot, error) {
	data, err := s.client.Get(ctx, s.latest).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, errors.Join(ErrReadFailed, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Join(ErrReadFailed, err)
	}
	return snap, nil
}

// History returns up to limit snapshots, newest first.
func (s *RedisStore) History(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 || int64(limit) > s.keep {
		limit = int(s.keep)
	}
	items, err := s.client.LRange(ctx, s.history, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}

	out := make([]Snapshot, 0, len(items))
	for _, item := range items {
		var snap Snapshot
		if err := json.Unmarshal([]byte(item), &snap); err != nil {
			return nil, errors.Join(ErrReadFailed, err)
		}
		out = append(out, snap)
	}
	return out, nil
}
