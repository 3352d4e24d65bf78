package recent

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dfa:recent:"

// RedisStore keeps one list per visitor. Updates run in a MULTI/EXEC
// transaction so the list never holds duplicates or more than max entries.
type RedisStore struct {
	client redis.Cmdable
	max    int
	ttl    time.Duration
}

// NewRedisStore builds a RedisStore. A non-positive ttl keeps lists forever.
func NewRedisStore(client redis.Cmdable, max int, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, max: clampMax(max), ttl: ttl}
}

func key(visitorID string) string {
	return keyPrefix + visitorID
}

func (s *RedisStore) Add(ctx context.Context, visitorID string, folio int64) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	k := key(visitorID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, k, 0, folio)
		pipe.LPush(ctx, k, folio)
		pipe.LTrim(ctx, k, 0, int64(s.max-1))
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remember folio: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, visitorID string) ([]int64, error) {
	if visitorID == "" {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, key(visitorID), 0, int64(s.max-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent folios: %w", err)
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Foreign values are skipped rather than failing the panel.
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *RedisStore) Clear(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return nil
	}
	if err := s.client.Del(ctx, key(visitorID)).Err(); err != nil {
		return fmt.Errorf("clear recent folios: %w", err)
	}
	return nil
}
