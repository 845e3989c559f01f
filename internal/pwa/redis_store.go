package pwa

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const (
	versionsKey = "pwa:cache:versions"
	keyPrefix   = "pwa:cache:"
)

// RedisStore keeps one cache generation per version tag. Each resource is a
// hash at pwa:cache:<version>:<path>; the paths of a generation are tracked
// in a set so Delete can reclaim them.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func entryKey(version, path string) string {
	return keyPrefix + version + ":" + path
}

func pathsKey(version string) string {
	return keyPrefix + version + ":paths"
}

func (s *RedisStore) Write(ctx context.Context, version string, entries map[string]Entry) error {
	pipe := s.rdb.TxPipeline()

	for path, e := range entries {
		pipe.HSet(ctx, entryKey(version, path), "body", e.Body, "content_type", e.ContentType)
		pipe.SAdd(ctx, pathsKey(version), path)
	}
	pipe.SAdd(ctx, versionsKey, version)

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, version, path string) (*Entry, error) {
	vals, err := s.rdb.HGetAll(ctx, entryKey(version, path)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNotCached
	}

	return &Entry{
		Body:        []byte(vals["body"]),
		ContentType: vals["content_type"],
	}, nil
}

func (s *RedisStore) Versions(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, versionsKey).Result()
}

func (s *RedisStore) Delete(ctx context.Context, version string) error {
	paths, err := s.rdb.SMembers(ctx, pathsKey(version)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(paths)+1)
	for _, p := range paths {
		keys = append(keys, entryKey(version, p))
	}
	keys = append(keys, pathsKey(version))

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.SRem(ctx, versionsKey, version)
	_, err = pipe.Exec(ctx)
	return err
}

var _ Store = (*RedisStore)(nil)
