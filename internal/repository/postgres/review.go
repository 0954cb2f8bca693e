package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

const reviewColumns = `id, product_id, reviewer_name, comment, rating, helpful_count, created_at`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	base
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX, opts ...Option) *ReviewRepository {
	return &ReviewRepository{base: newBase(pool, opts)}
}

// Create inserts a new product review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	query := `
		INSERT INTO product_reviews (id, product_id, reviewer_name, comment, rating, helpful_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, end := r.begin(ctx, "CreateReview", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.ReviewerName,
		review.Comment,
		review.Rating,
		review.HelpfulCount,
		review.CreatedAt,
	)
	if err != nil {
		return storageError("insert review", err)
	}
	return nil
}

// ListByProduct returns one page of a product's reviews, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, page pagination.Request) (result pagination.Page[domain.Review], err error) {
	countQuery := `SELECT COUNT(*) FROM product_reviews WHERE product_id = $1`
	query := `
		SELECT ` + reviewColumns + `
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	ctx, end := r.begin(ctx, "ListReviews", query)
	defer func() { end(err) }()

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, productID).Scan(&total); err != nil {
		return pagination.Page[domain.Review]{}, storageError("count reviews", err)
	}
	if total == 0 || page.Offset() >= total {
		return pagination.NewPage[domain.Review](nil, total, page), nil
	}

	rows, err := r.pool.Query(ctx, query, productID, page.Size, page.Offset())
	if err != nil {
		return pagination.Page[domain.Review]{}, storageError("list reviews", err)
	}
	reviews, err := pgx.CollectRows(rows, scanReview)
	if err != nil {
		return pagination.Page[domain.Review]{}, storageError("scan review rows", err)
	}
	return pagination.NewPage(reviews, total, page), nil
}

// IncrementHelpful bumps helpful_count in a single statement so concurrent
// votes are never lost.
func (r *ReviewRepository) IncrementHelpful(ctx context.Context, id string) (review *domain.Review, err error) {
	query := `
		UPDATE product_reviews
		SET helpful_count = helpful_count + 1
		WHERE id = $1
		RETURNING ` + reviewColumns

	ctx, end := r.begin(ctx, "IncrementHelpful", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		if isInvalidText(err) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, storageError("increment helpful", err)
	}
	rv, err := pgx.CollectExactlyOneRow(rows, scanReview)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, storageError("increment helpful", err)
	}
	return &rv, nil
}

// RecentComments feeds the summarizer.
func (r *ReviewRepository) RecentComments(ctx context.Context, productID string, limit int) (comments []string, err error) {
	query := `
		SELECT comment
		FROM product_reviews
		WHERE product_id = $1 AND btrim(comment) <> ''
		ORDER BY created_at DESC
		LIMIT $2`

	ctx, end := r.begin(ctx, "RecentComments", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, storageError("recent comments", err)
	}
	comments, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageError("recent comments", err)
	}
	return comments, nil
}

func scanReview(row pgx.CollectableRow) (domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.ReviewerName,
		&rv.Comment,
		&rv.Rating,
		&rv.HelpfulCount,
		&rv.CreatedAt,
	)
	return rv, err
}
