package summary

import (
	"context"
	"log/slog"
)

// Cache stores summaries keyed by product and review count.
type Cache interface {
	Get(ctx context.Context, productID string, reviewCount int) (string, bool, error)
	Set(ctx context.Context, productID string, reviewCount int, summary string) error
}

// Cached serves summaries from cache and fills it from inner on a miss.
// Cache errors degrade to calling inner.
type Cached struct {
	inner  Summarizer
	cache  Cache
	logger *slog.Logger
}

// NewCached wraps inner with cache.
func NewCached(inner Summarizer, cache Cache, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, cache: cache, logger: logger}
}

// Summarize implements Summarizer.
func (c *Cached) Summarize(ctx context.Context, req Request) (string, error) {
	if req.ReviewCount == 0 {
		return "", nil
	}

	s, ok, err := c.cache.Get(ctx, req.ProductID, req.ReviewCount)
	if err != nil {
		c.logger.WarnContext(ctx, "summary cache lookup failed",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()),
		)
	}
	if ok {
		return s, nil
	}

	s, err = c.inner.Summarize(ctx, req)
	if err != nil || s == "" {
		return s, err
	}

	if err := c.cache.Set(ctx, req.ProductID, req.ReviewCount, s); err != nil {
		c.logger.WarnContext(ctx, "summary cache store failed",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()),
		)
	}
	return s, nil
}
