// Package cache holds the string caches metadata lookups read through: a
// process-local one and a Redis one shared between replicas.
package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultExpiration      = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// LocalCache is an in-process TTL cache.
type LocalCache struct {
	cache *gocache.Cache
}

func NewLocal(defaultExpiration, cleanupInterval time.Duration) *LocalCache {
	return &LocalCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (c *LocalCache) Get(_ context.Context, key string) (string, bool, error) {
	v, found := c.cache.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (c *LocalCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *LocalCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.cache.Delete(key)
	}
	return nil
}

// RedisCache stores entries under prefix in a shared Redis.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
