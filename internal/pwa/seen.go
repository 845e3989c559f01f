package pwa

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// SeenStore persists the one-time "install prompt seen" flag per visitor.
// The flag only gates the UI-level suggestion, never the install mechanism.
type SeenStore interface {
	Seen(ctx context.Context, visitorID string) (bool, error)
	MarkSeen(ctx context.Context, visitorID string) error
}

type RedisSeenStore struct {
	rdb *redis.Client
}

func NewRedisSeenStore(rdb *redis.Client) *RedisSeenStore {
	return &RedisSeenStore{rdb: rdb}
}

func seenKey(visitorID string) string {
	return "pwa:install-prompt-seen:" + visitorID
}

func (s *RedisSeenStore) Seen(ctx context.Context, visitorID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, seenKey(visitorID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSeenStore) MarkSeen(ctx context.Context, visitorID string) error {
	return s.rdb.Set(ctx, seenKey(visitorID), "1", 0).Err()
}

var _ SeenStore = (*RedisSeenStore)(nil)
