// Package cache stores rendered query responses outside the process. Keys
// embed the dataset version so a reload never serves stale results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the service.
const DefaultPrefix = "ticket-analytics:"

// ResponseCache stores JSON-encodable responses.
type ResponseCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	PurgeStale(ctx context.Context, version string) (int64, error)
}

// Key builds a versioned cache key for an operation and its canonical query.
func Key(version, operation, query string) string {
	return fmt.Sprintf("%s%s:%s?%s", DefaultPrefix, version, operation, query)
}

// RedisCache is a ResponseCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps client. A zero ttl stores keys without expiry.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// PurgeStale deletes every service key not written for version.
func (c *RedisCache) PurgeStale(ctx context.Context, version string) (int64, error) {
	keep := DefaultPrefix + version + ":"
	var deleted int64
	iter := c.client.Scan(ctx, 0, DefaultPrefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		deleted += n
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, keep) {
			continue
		}
		batch = append(batch, key)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, flush()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)    { return false, nil }
func (Nop) Set(context.Context, string, any) error            { return nil }
func (Nop) PurgeStale(context.Context, string) (int64, error) { return 0, nil }
