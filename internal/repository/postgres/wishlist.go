package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	base
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool database.DBTX, opts ...Option) *WishlistRepository {
	return &WishlistRepository{base: newBase(pool, opts)}
}

// Add inserts a product into the user's wishlist.
// Uses ON CONFLICT DO NOTHING for idempotent behavior.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) (err error) {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	ctx, end := r.begin(ctx, "AddWishlistItem", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, item.UserID, item.ProductID, item.CreatedAt); err != nil {
		return storageError("add to wishlist", err)
	}
	return nil
}

// Remove deletes a product from the user's wishlist.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) (removed bool, err error) {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	ctx, end := r.begin(ctx, "RemoveWishlistItem", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return false, storageError("remove from wishlist", err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListProductIDs returns the user's saved products, newest first.
func (r *WishlistRepository) ListProductIDs(ctx context.Context, userID string) (ids []string, err error) {
	query := `
		SELECT product_id
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, product_id ASC`

	ctx, end := r.begin(ctx, "ListWishlist", query)
	defer func() { end(err) }()

	return r.collectIDs(ctx, "list wishlist", query, userID)
}

// ListUserIDsByProduct returns the users who saved productID.
func (r *WishlistRepository) ListUserIDsByProduct(ctx context.Context, productID string) (ids []string, err error) {
	query := `
		SELECT user_id
		FROM wishlist_items
		WHERE product_id = $1
		ORDER BY user_id`

	ctx, end := r.begin(ctx, "ListWishlistUsers", query)
	defer func() { end(err) }()

	return r.collectIDs(ctx, "list wishlist users", query, productID)
}

func (r *WishlistRepository) collectIDs(ctx context.Context, op, query string, arg string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, storageError(op, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageError(op, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
