package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository"
)

// AggregationService computes review statistics. Nothing is precomputed;
// every call aggregates the current reviews.
type AggregationService struct {
	products repository.ProductRepository
	stats    repository.StatsRepository
	logger   *slog.Logger
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(products repository.ProductRepository, stats repository.StatsRepository, logger *slog.Logger) *AggregationService {
	return &AggregationService{
		products: products,
		stats:    stats,
		logger:   logger,
	}
}

// ComputeGlobalStats aggregates all reviews of the products selected by the
// same filters ListProducts accepts. The average is nil when nothing
// matched.
func (s *AggregationService) ComputeGlobalStats(ctx context.Context, category, name *string) (domain.RatingStats, error) {
	q := domain.NewProductQuery(category, name)

	var (
		stats domain.RatingStats
		err   error
	)
	switch q.Kind {
	case domain.QueryByCategory:
		stats, err = s.stats.CategoryStats(ctx, q.Category)
	case domain.QueryByName:
		stats, err = s.stats.SearchStats(ctx, q.Name)
	case domain.QueryByCategoryAndName:
		stats, err = s.stats.CategoryAndSearchStats(ctx, q.Category, q.Name)
	default:
		stats, err = s.stats.GlobalStats(ctx)
	}
	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("compute stats %s: %w", q.Kind, err)
	}

	return domain.NewRatingStats(stats.ReviewCount, stats.AverageRating), nil
}

// ComputeBreakdown returns how many reviews of productID carry each rating.
// Ratings without reviews are absent.
func (s *AggregationService) ComputeBreakdown(ctx context.Context, productID string) (domain.RatingBreakdown, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("compute breakdown: %w", err)
	}

	rows, err := s.stats.FindRatingCountsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("compute breakdown: %w", err)
	}
	return domain.BreakdownFrom(rows), nil
}
