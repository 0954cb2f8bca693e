package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "summary:"

// SummaryCache stores generated review summaries. Keys embed the review
// count, so a new review makes the previous entry unreachable and it
// expires on its own.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// SummaryKey returns the cache key for a product at a given review count.
func SummaryKey(productID string, reviewCount int) string {
	return fmt.Sprintf("%s%s:%d", summaryKeyPrefix, productID, reviewCount)
}

// Get returns the cached summary and whether one was present.
func (c *SummaryCache) Get(ctx context.Context, productID string, reviewCount int) (string, bool, error) {
	s, err := c.client.Get(ctx, SummaryKey(productID, reviewCount)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get summary: %w", err)
	}
	return s, true, nil
}

// Set stores summary with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, productID string, reviewCount int, summary string) error {
	if err := c.client.Set(ctx, SummaryKey(productID, reviewCount), summary, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set summary: %w", err)
	}
	return nil
}
