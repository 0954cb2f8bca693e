package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/summary"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// summaryCommentLimit caps how many comments are sent for summarising.
const summaryCommentLimit = 50

// CatalogService lists products and assembles product detail views.
type CatalogService struct {
	products   repository.ProductRepository
	stats      repository.StatsRepository
	reviews    repository.ReviewRepository
	summarizer summary.Summarizer
	logger     *slog.Logger
}

// NewCatalogService creates a new catalog service. A nil summarizer
// disables summaries.
func NewCatalogService(
	products repository.ProductRepository,
	stats repository.StatsRepository,
	reviews repository.ReviewRepository,
	summarizer summary.Summarizer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		stats:      stats,
		reviews:    reviews,
		summarizer: summarizer,
		logger:     logger,
	}
}

// ListProducts returns one page of products matching the optional category
// and name filters, each with its review stats. Pagination is validated
// before the store is touched.
func (s *CatalogService) ListProducts(ctx context.Context, category, name *string, page pagination.Request) (pagination.Page[domain.ProductView], error) {
	if err := validatePage(page, domain.IsSortableProductField); err != nil {
		return pagination.Page[domain.ProductView]{}, err
	}

	q := domain.NewProductQuery(category, name)

	var (
		result pagination.Page[domain.Product]
		err    error
	)
	switch q.Kind {
	case domain.QueryByCategory:
		result, err = s.products.FindByCategory(ctx, q.Category, page)
	case domain.QueryByName:
		result, err = s.products.FindByName(ctx, q.Name, page)
	case domain.QueryByCategoryAndName:
		result, err = s.products.FindByCategoryAndName(ctx, q.Category, q.Name, page)
	default:
		result, err = s.products.FindAll(ctx, page)
	}
	if err != nil {
		return pagination.Page[domain.ProductView]{}, fmt.Errorf("list products %s: %w", q.Kind, err)
	}

	return pagination.Map(result, domain.ListView), nil
}

// GetProductDetail returns the product with its rating breakdown and, when
// available, a review summary. Stats are derived from the breakdown so the
// two always agree.
func (s *CatalogService) GetProductDetail(ctx context.Context, id string) (*domain.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product detail: %w", err)
	}

	rows, err := s.stats.FindRatingCountsByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product rating counts: %w", err)
	}
	breakdown := domain.BreakdownFrom(rows)

	view := domain.NewProductView(*product, breakdown.Stats())
	view.RatingBreakdown = breakdown

	if s.summarizer != nil && view.ReviewCount > 0 {
		if text := s.summarize(ctx, product, view.ReviewCount); text != "" {
			view.Summary = &text
		}
	}

	return &view, nil
}

// summarize never fails the detail request; problems are logged.
func (s *CatalogService) summarize(ctx context.Context, product *domain.Product, reviewCount int) string {
	comments, err := s.reviews.RecentComments(ctx, product.ID, summaryCommentLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "load comments for summary failed",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		return ""
	}

	text, err := s.summarizer.Summarize(ctx, summary.Request{
		ProductID:   product.ID,
		ProductName: product.Name,
		ReviewCount: reviewCount,
		Comments:    comments,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "review summary unavailable",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return text
}

// ListCategories returns every category label in use.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
