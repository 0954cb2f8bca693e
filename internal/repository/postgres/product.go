package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

const productColumns = `p.id, p.name, p.description, p.categories, p.price, p.currency, p.image_url, p.created_at, p.updated_at,
		       COALESCE(s.review_count, 0) AS review_count, s.average_rating`

const productFrom = `
		FROM products p
		LEFT JOIN (
			SELECT product_id, COUNT(*) AS review_count, AVG(rating)::float8 AS average_rating
			FROM product_reviews
			GROUP BY product_id
		) s ON s.product_id = p.id`

// Filter predicates, one per query shape. Name matching uses strpos so
// that % and _ in user input are literal.
const (
	whereCategory        = `$1 = ANY(p.categories)`
	whereName            = `strpos(lower(p.name), lower($1)) > 0`
	whereCategoryAndName = `$1 = ANY(p.categories) AND strpos(lower(p.name), lower($2)) > 0`
	whereIDs             = `p.id = ANY($1::uuid[])`
)

var sortColumns = map[string]string{
	domain.SortByName:          "p.name",
	domain.SortByPrice:         "p.price",
	domain.SortByCreatedAt:     "p.created_at",
	domain.SortByAverageRating: "s.average_rating",
	domain.SortByReviewCount:   "review_count",
}

// ProductRepository implements repository.ProductRepository and
// repository.StatsRepository using PostgreSQL.
type ProductRepository struct {
	base
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX, opts ...Option) *ProductRepository {
	return &ProductRepository{base: newBase(pool, opts)}
}

// FindAll pages over every product.
func (r *ProductRepository) FindAll(ctx context.Context, page pagination.Request) (pagination.Page[domain.Product], error) {
	return r.findPage(ctx, "FindAll", "", page)
}

// FindByCategory pages over products whose category set contains category.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return r.findPage(ctx, "FindByCategory", whereCategory, page, category)
}

// FindByName pages over products whose name contains sub, ignoring case.
func (r *ProductRepository) FindByName(ctx context.Context, sub string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return r.findPage(ctx, "FindByName", whereName, page, sub)
}

// FindByCategoryAndName applies both filters.
func (r *ProductRepository) FindByCategoryAndName(ctx context.Context, category, sub string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return r.findPage(ctx, "FindByCategoryAndName", whereCategoryAndName, page, category, sub)
}

// FindByIDs pages over the listed products.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string, page pagination.Request) (pagination.Page[domain.Product], error) {
	if len(ids) == 0 {
		return pagination.NewPage[domain.Product](nil, 0, page), nil
	}
	return r.findPage(ctx, "FindByIDs", whereIDs, page, ids)
}

// FindByID retrieves a product with its review stats.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (p *domain.Product, err error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.id = $1`

	ctx, end := r.begin(ctx, "FindByID", query)
	defer func() { end(err) }()

	var prod domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &prod); err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, storageError("find product", err)
	}
	return &prod, nil
}

// ListCategories returns the distinct category labels across products.
func (r *ProductRepository) ListCategories(ctx context.Context) (categories []string, err error) {
	query := `
		SELECT DISTINCT c
		FROM products, unnest(categories) AS c
		ORDER BY c`

	ctx, end := r.begin(ctx, "ListCategories", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storageError("list categories", err)
	}
	categories, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageError("list categories", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// findPage runs the count and the page query for one filter predicate.
// args bind the predicate's placeholders; limit and offset follow them.
func (r *ProductRepository) findPage(ctx context.Context, op, where string, page pagination.Request, args ...any) (result pagination.Page[domain.Product], err error) {
	orderBy, err := productOrderBy(page.Sort)
	if err != nil {
		return pagination.Page[domain.Product]{}, err
	}

	whereClause := ""
	if where != "" {
		whereClause = "\n\t\tWHERE " + where
	}

	countQuery := `SELECT COUNT(*) FROM products p` + whereClause
	listQuery := fmt.Sprintf(`SELECT %s%s%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, productFrom, whereClause, orderBy, len(args)+1, len(args)+2,
	)

	ctx, end := r.begin(ctx, op, listQuery)
	defer func() { end(err) }()

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return pagination.Page[domain.Product]{}, storageError("count products", err)
	}
	if total == 0 || page.Offset() >= total {
		return pagination.NewPage[domain.Product](nil, total, page), nil
	}

	rows, err := r.pool.Query(ctx, listQuery, append(args, page.Size, page.Offset())...)
	if err != nil {
		return pagination.Page[domain.Product]{}, storageError("list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, page.Size)
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return pagination.Page[domain.Product]{}, storageError("scan product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[domain.Product]{}, storageError("iterate product rows", err)
	}

	return pagination.NewPage(products, total, page), nil
}

// productOrderBy renders sort keys over whitelisted columns and always
// ends with the primary key so pages are stable.
func productOrderBy(keys []pagination.SortKey) (string, error) {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			return "", apperrors.InvalidPagination(fmt.Sprintf("cannot sort products by %q", k.Field))
		}
		switch k.Direction {
		case pagination.Desc:
			parts = append(parts, col+" DESC NULLS LAST")
		default:
			parts = append(parts, col+" ASC NULLS FIRST")
		}
	}
	parts = append(parts, "p.id ASC")
	return strings.Join(parts, ", "), nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	var (
		count int
		avg   *float64
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Categories,
		&p.Price,
		&p.Currency,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
		&count,
		&avg,
	); err != nil {
		return err
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	p.Stats = domain.NewRatingStats(count, avg)
	return nil
}
