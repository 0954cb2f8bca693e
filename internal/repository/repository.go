package repository

import (
	"context"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// ProductRepository reads products. Every list method returns one page of
// the ordered match set together with the total number of matches; each
// product carries its review stats.
type ProductRepository interface {
	FindAll(ctx context.Context, page pagination.Request) (pagination.Page[domain.Product], error)

	// FindByCategory matches products whose category set contains category.
	FindByCategory(ctx context.Context, category string, page pagination.Request) (pagination.Page[domain.Product], error)

	// FindByName matches products whose name contains sub, ignoring case.
	FindByName(ctx context.Context, sub string, page pagination.Request) (pagination.Page[domain.Product], error)

	FindByCategoryAndName(ctx context.Context, category, sub string, page pagination.Request) (pagination.Page[domain.Product], error)

	// FindByIDs pages over the given products. Unknown ids are ignored.
	FindByIDs(ctx context.Context, ids []string, page pagination.Request) (pagination.Page[domain.Product], error)

	// FindByID returns a NotFound error for an unknown id.
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// ListCategories returns every distinct category label, sorted.
	ListCategories(ctx context.Context) ([]string, error)
}

// StatsRepository computes review aggregates with SQL, one method per
// product query shape.
type StatsRepository interface {
	GlobalStats(ctx context.Context) (domain.RatingStats, error)
	CategoryStats(ctx context.Context, category string) (domain.RatingStats, error)
	SearchStats(ctx context.Context, sub string) (domain.RatingStats, error)
	CategoryAndSearchStats(ctx context.Context, category, sub string) (domain.RatingStats, error)

	// FindRatingCountsByProduct returns one row per rating value present.
	FindRatingCountsByProduct(ctx context.Context, productID string) ([]domain.RatingCount, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct pages over a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID string, page pagination.Request) (pagination.Page[domain.Review], error)

	// IncrementHelpful atomically bumps helpful_count and returns the
	// updated review, or NotFound.
	IncrementHelpful(ctx context.Context, id string) (*domain.Review, error)

	// RecentComments returns up to limit non-empty comments, newest first.
	RecentComments(ctx context.Context, productID string, limit int) ([]string, error)
}

// WishlistRepository persists wishlist membership.
type WishlistRepository interface {
	// Add is a no-op when the item already exists.
	Add(ctx context.Context, item *domain.WishlistItem) error

	// Remove reports whether an item was deleted.
	Remove(ctx context.Context, userID, productID string) (bool, error)

	// ListProductIDs returns the user's products, most recently added first.
	ListProductIDs(ctx context.Context, userID string) ([]string, error)

	// ListUserIDsByProduct returns every user who saved productID.
	ListUserIDsByProduct(ctx context.Context, productID string) ([]string, error)
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)

	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead returns NotFound for an unknown id.
	MarkRead(ctx context.Context, id string) error

	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// Delete returns NotFound for an unknown id.
	Delete(ctx context.Context, id string) error

	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}
