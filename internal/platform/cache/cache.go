// Copyright (c) 2026 UILove. All rights reserved.

/*
Package cache provides the Redis-backed response cache for the catalog API.

The directory is overwhelmingly read-heavy: listing pages, category browses,
and search results are served from cache, while any catalog mutation blows
away the whole "websites:*" key space in one sweep.

Failure Policy:

  - Get failures degrade to a cache miss.
  - Set/Delete failures degrade to a no-op.

Redis being down must never take the API down with it; every failure is
logged and the request falls through to PostgreSQL.
*/
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin coordinator around a Redis client.
//
// It is injected into services rather than accessed globally, so tests can
// swap it for a nil or fake implementation.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a Cache with the given default TTL for Set operations.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger, ttl: ttl}
}

// Get retrieves the raw cached payload for a key.
//
// Returns (nil, false) on a miss or on any Redis failure.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache_get_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return nil, false
	}
	return payload, true
}

// Set stores a raw payload under a key with the cache's default TTL.
//
// Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache_set_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// Delete removes a single key.
//
// Failures are logged and swallowed.
func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache_delete_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// DeleteMatching removes every key matching a glob pattern (e.g. "websites:*").
//
// # Implementation
//
// Uses SCAN rather than KEYS so a large key space does not block Redis.
// Keys are deleted in batches as the iterator yields them.
func (c *Cache) DeleteMatching(ctx context.Context, pattern string) {
	const batchSize = 100

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	batch := make([]string, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			c.logger.Warn("cache_invalidate_failed",
				slog.String("pattern", pattern),
				slog.Any("error", err),
			)
		}
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		c.logger.Warn("cache_scan_failed",
			slog.String("pattern", pattern),
			slog.Any("error", err),
		)
	}
}
