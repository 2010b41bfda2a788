package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	followersCountKeyPrefix = "social:followers:"
	followingCountKeyPrefix = "social:following:"
	likesCountKeyPrefix     = "post:likes:"

	generationSuffix = ":gen"

	// DefaultTTL bounds how long a count can outlive a missed invalidation.
	DefaultTTL = 10 * time.Minute
	// generationTTL must outlast the slowest count query.
	generationTTL = time.Hour
)

func FollowersCountKey(profileID uint) string {
	return followersCountKeyPrefix + strconv.FormatUint(uint64(profileID), 10)
}

func FollowingCountKey(profileID uint) string {
	return followingCountKeyPrefix + strconv.FormatUint(uint64(profileID), 10)
}

func LikesCountKey(postID uint) string {
	return likesCountKeyPrefix + strconv.FormatUint(uint64(postID), 10)
}

// CounterCache caches derived counts. The database stays the source of truth;
// writers invalidate and readers repopulate on miss.
//
// Every Invalidate bumps the key's generation. A reader takes the generation
// before loading from the database and passes it to Fill, which drops the
// value if the key was invalidated in between.
type CounterCache interface {
	// Get returns (count, true, nil) on hit and (0, false, nil) on miss.
	Get(ctx context.Context, key string) (int64, bool, error)
	Generation(ctx context.Context, key string) (int64, error)
	Fill(ctx context.Context, key string, count, generation int64) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisCounterCache implements CounterCache backed by Redis.
type RedisCounterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCounterCache(client *redis.Client, ttl time.Duration) *RedisCounterCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCounterCache{client: client, ttl: ttl}
}

func (c *RedisCounterCache) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return count, true, nil
}

func (c *RedisCounterCache) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := readGeneration(ctx, c.client, key)
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", key+generationSuffix, err)
	}
	return gen, nil
}

// Fill stores count unless key was invalidated since generation was read.
func (c *RedisCounterCache) Fill(ctx context.Context, key string, count, generation int64) error {
	genKey := key + generationSuffix
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, count, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("redis fill %s: %w", key, err)
	}
	return nil
}

func (c *RedisCounterCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, key := range keys {
			genKey := key + generationSuffix
			pipe.Incr(ctx, genKey)
			pipe.Expire(ctx, genKey, generationTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key+generationSuffix).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// NoopCounterCache always misses. It is used when Redis is not configured.
type NoopCounterCache struct{}

func (NoopCounterCache) Get(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (NoopCounterCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (NoopCounterCache) Fill(context.Context, string, int64, int64) error { return nil }
func (NoopCounterCache) Invalidate(context.Context, ...string) error { return nil }

var (
	_ CounterCache = (*RedisCounterCache)(nil)
	_ CounterCache = NoopCounterCache{}
)
