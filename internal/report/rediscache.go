package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terracart/terracart/internal/impact/timeline"
)

// RedisCache is a Cache backed by Redis, for deployments running more than
// one instance: invalidation triggered on any instance is visible to all.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis at addr and returns a cache with the
// given TTL.
func NewRedisCache(addr string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, DB: db}),
		ttl:    ttl,
	}
}

// Get returns the cached report or ErrCacheMiss. Undecodable entries count
// as misses so a schema change never wedges the cache.
func (c *RedisCache) Get(ctx context.Context, userID string, tf timeline.Timeframe) (*Report, error) {
	data, err := c.client.Get(ctx, cacheKey(userID, tf)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis cache get failed: %w", err)
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, ErrCacheMiss
	}
	return &rep, nil
}

// Set stores a report under its (user, timeframe) key with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, rep *Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(rep.UserID, rep.Timeframe), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set failed: %w", err)
	}
	return nil
}

// InvalidateUser drops every timeframe entry for the user. Idempotent.
func (c *RedisCache) InvalidateUser(ctx context.Context, userID string) error {
	keys := make([]string, 0, len(timeline.Timeframes()))
	for _, tf := range timeline.Timeframes() {
		keys = append(keys, cacheKey(userID, tf))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis cache invalidation failed: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
