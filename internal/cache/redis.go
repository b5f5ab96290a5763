// Package cache provides the Redis-backed offer summary cache shared between API instances.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "offer-summary:"

// RedisSummaryCache stores built summaries as JSON under their build fingerprint.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the Redis instance at REDIS_URL.
func NewRedis(cfg config.CacheConfig) (*RedisSummaryCache, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewRedisWithClient(redis.NewClient(opt), cfg.GetSummaryCacheTTL()), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// Ping checks connectivity.
func (c *RedisSummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached summary for fingerprint, if any.
func (c *RedisSummaryCache) Get(ctx context.Context, fingerprint string) (*offersummary.OfferSummary, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var summary offersummary.OfferSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		// A payload from an incompatible build is treated as a miss.
		return nil, false, nil
	}
	return &summary, true, nil
}

// Set stores summary under fingerprint with the configured TTL.
func (c *RedisSummaryCache) Set(ctx context.Context, fingerprint string, summary *offersummary.OfferSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+fingerprint, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisSummaryCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
