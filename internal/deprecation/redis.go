package deprecation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "vendcms:deprecation"

const (
	fieldComponent = "component"
	fieldMessage   = "message"
	fieldCount     = "count"
	fieldFirstSeen = "first_seen"
	fieldLastUsed  = "last_used"
)

// RedisStore shares counters between processes. Each key is a hash and the
// set at "<prefix>:keys" indexes them.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) hashKey(key Key) string {
	return s.prefix + ":usage:" + key.Component + "|" + key.Message
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":keys"
}

func (s *RedisStore) Increment(ctx context.Context, key Key, at time.Time) (Usage, error) {
	hash := s.hashKey(key)
	stamp := at.UTC().UnixNano()

	var (
		count *redis.IntCmd
		first *redis.StringCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.HIncrBy(ctx, hash, fieldCount, 1)
		pipe.HSetNX(ctx, hash, fieldFirstSeen, stamp)
		pipe.HSet(ctx, hash,
			fieldComponent, key.Component,
			fieldMessage, key.Message,
			fieldLastUsed, stamp,
		)
		pipe.SAdd(ctx, s.indexKey(), hash)
		first = pipe.HGet(ctx, hash, fieldFirstSeen)
		return nil
	})
	if err != nil {
		return Usage{}, fmt.Errorf("deprecation: redis increment %s: %w", hash, err)
	}
	firstSeen, err := parseStamp(first.Val())
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Component: key.Component,
		Message:   key.Message,
		Count:     count.Val(),
		FirstSeen: firstSeen,
		LastUsed:  time.Unix(0, stamp).UTC(),
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key Key) (Usage, bool, error) {
	values, err := s.client.HGetAll(ctx, s.hashKey(key)).Result()
	if err != nil {
		return Usage{}, false, fmt.Errorf("deprecation: redis get: %w", err)
	}
	if len(values) == 0 {
		return Usage{}, false, nil
	}
	usage, err := decodeUsage(values)
	return usage, err == nil, err
}

func (s *RedisStore) List(ctx context.Context) ([]Usage, error) {
	hashes, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("deprecation: redis list: %w", err)
	}
	out := make([]Usage, 0, len(hashes))
	for _, hash := range hashes {
		values, err := s.client.HGetAll(ctx, hash).Result()
		if err != nil {
			return nil, fmt.Errorf("deprecation: redis list %s: %w", hash, err)
		}
		if len(values) == 0 {
			continue
		}
		usage, err := decodeUsage(values)
		if err != nil {
			return nil, err
		}
		out = append(out, usage)
	}
	sortUsages(out)
	return out, nil
}

func (s *RedisStore) Reset(ctx context.Context) error {
	hashes, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("deprecation: redis reset: %w", err)
	}
	keys := append(hashes, s.indexKey())
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deprecation: redis reset: %w", err)
	}
	return nil
}

func decodeUsage(values map[string]string) (Usage, error) {
	count, err := strconv.ParseInt(values[fieldCount], 10, 64)
	if err != nil {
		return Usage{}, fmt.Errorf("deprecation: invalid count %q: %w", values[fieldCount], err)
	}
	first, err := parseStamp(values[fieldFirstSeen])
	if err != nil {
		return Usage{}, err
	}
	last, err := parseStamp(values[fieldLastUsed])
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Component: values[fieldComponent],
		Message:   values[fieldMessage],
		Count:     count,
		FirstSeen: first,
		LastUsed:  last,
	}, nil
}

func parseStamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("deprecation: invalid timestamp %q: %w", raw, err)
	}
	return time.Unix(0, nanos).UTC(), nil
}
