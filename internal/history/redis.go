package history

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hist:"

// RedisStore keeps each session as a capped Redis list (LPUSH + LTRIM).
type RedisStore struct {
	rdb  redis.Cmdable
	size int
	ttl  time.Duration
}

func NewRedisStore(rdb redis.Cmdable, size int, ttl time.Duration) *RedisStore {
	if size <= 0 {
		size = DefaultSize
	}
	return &RedisStore{rdb: rdb, size: size, ttl: ttl}
}

func key(session string) string { return keyPrefix + session }

func (s *RedisStore) Push(ctx context.Context, session, pwd string) error {
	if session == "" {
		return ErrNoSession
	}
	k := key(session)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, k, pwd)
	pipe.LTrim(ctx, k, 0, int64(s.size-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) List(ctx context.Context, session string) ([]string, error) {
	if session == "" {
		return nil, ErrNoSession
	}
	items, err := s.rdb.LRange(ctx, key(session), 0, int64(s.size-1)).Result()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (s *RedisStore) Clear(ctx context.Context, session string) error {
	if session == "" {
		return ErrNoSession
	}
	return s.rdb.Del(ctx, key(session)).Err()
}
