package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores computed reports.
//
// Keys carry the generation read before the report was computed.
// Invalidation moves to a new generation, so a report computed while data
// changed is stored under a generation that is never read again.
type Cache interface {
	Generation(ctx context.Context) (int64, error)

	// Get decodes the value for key into target and reports whether it was found.
	Get(ctx context.Context, generation int64, key string, target any) (bool, error)
	Set(ctx context.Context, generation int64, key string, value any) error

	// Invalidate discards all stored values.
	Invalidate(ctx context.Context) error
}

// NoCache never stores anything.
type NoCache struct{}

func (NoCache) Generation(context.Context) (int64, error)             { return 0, nil }
func (NoCache) Get(context.Context, int64, string, any) (bool, error) { return false, nil }
func (NoCache) Set(context.Context, int64, string, any) error         { return nil }
func (NoCache) Invalidate(context.Context) error                      { return nil }

// RedisCache stores reports as JSON in Redis. Entries expire after the TTL,
// entries of past generations are left to expire.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a cache storing entries under prefix for ttl.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) generationKey() string {
	return c.prefix + ":generation"
}

// entryKey returns the Redis key of a report key in a generation.
func (c *RedisCache) entryKey(generation int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, generation, key)
}

func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func (c *RedisCache) Get(ctx context.Context, generation int64, key string, target any) (bool, error) {
	val, err := c.client.Get(ctx, c.entryKey(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, target); err != nil {
		return false, fmt.Errorf("decoding cached report %s: %w", key, err)
	}

	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, generation int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.entryKey(generation, key), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}
