package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
)

const statsSelect = `
		SELECT COUNT(r.id), AVG(r.rating)::float8
		FROM product_reviews r
		JOIN products p ON p.id = r.product_id`

// GlobalStats aggregates every review.
func (r *ProductRepository) GlobalStats(ctx context.Context) (domain.RatingStats, error) {
	return r.stats(ctx, "GlobalStats", "")
}

// CategoryStats aggregates reviews of products in category.
func (r *ProductRepository) CategoryStats(ctx context.Context, category string) (domain.RatingStats, error) {
	return r.stats(ctx, "CategoryStats", whereCategory, category)
}

// SearchStats aggregates reviews of products whose name contains sub.
func (r *ProductRepository) SearchStats(ctx context.Context, sub string) (domain.RatingStats, error) {
	return r.stats(ctx, "SearchStats", whereName, sub)
}

// CategoryAndSearchStats applies both filters.
func (r *ProductRepository) CategoryAndSearchStats(ctx context.Context, category, sub string) (domain.RatingStats, error) {
	return r.stats(ctx, "CategoryAndSearchStats", whereCategoryAndName, category, sub)
}

// FindRatingCountsByProduct groups a product's reviews by rating.
func (r *ProductRepository) FindRatingCountsByProduct(ctx context.Context, productID string) (counts []domain.RatingCount, err error) {
	query := `
		SELECT rating, COUNT(*)
		FROM product_reviews
		WHERE product_id = $1
		GROUP BY rating
		ORDER BY rating`

	ctx, end := r.begin(ctx, "FindRatingCountsByProduct", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, storageError("rating counts", err)
	}
	counts, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RatingCount, error) {
		var c domain.RatingCount
		err := row.Scan(&c.Rating, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, storageError("rating counts", err)
	}
	return counts, nil
}

func (r *ProductRepository) stats(ctx context.Context, op, where string, args ...any) (stats domain.RatingStats, err error) {
	query := statsSelect
	if where != "" {
		query += "\n\t\tWHERE " + where
	}

	ctx, end := r.begin(ctx, op, query)
	defer func() { end(err) }()

	var (
		count int
		avg   *float64
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count, &avg); err != nil {
		return domain.RatingStats{}, storageError("review stats", err)
	}
	return domain.NewRatingStats(count, avg), nil
}
