// Package http exposes the product review API over REST.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/service"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// CatalogService is the product read side used by ProductHandler.
type CatalogService interface {
	ListProducts(ctx context.Context, category, name *string, page pagination.Request) (pagination.Page[domain.ProductView], error)
	GetProductDetail(ctx context.Context, id string) (*domain.ProductView, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// AggregationService computes rating statistics.
type AggregationService interface {
	ComputeGlobalStats(ctx context.Context, category, name *string) (domain.RatingStats, error)
	ComputeBreakdown(ctx context.Context, productID string) (domain.RatingBreakdown, error)
}

// ReviewService manages reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, productID string, input *service.CreateReviewInput) (*domain.Review, error)
	ListReviews(ctx context.Context, productID string, page pagination.Request) (pagination.Page[domain.Review], error)
	MarkHelpful(ctx context.Context, reviewID string) (*domain.Review, error)
}

// WishlistService manages wishlists.
type WishlistService interface {
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	ListProductIDs(ctx context.Context, userID string) ([]string, error)
	ListProducts(ctx context.Context, userID string, page pagination.Request) (pagination.Page[domain.ProductView], error)
}

// NotificationService manages notifications.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

// optionalQuery returns nil when the parameter is absent or blank.
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}
