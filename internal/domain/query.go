package domain

import "strings"

// QueryKind selects one of the four product query shapes.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryByCategory
	QueryByName
	QueryByCategoryAndName
)

func (k QueryKind) String() string {
	switch k {
	case QueryAll:
		return "all"
	case QueryByCategory:
		return "by_category"
	case QueryByName:
		return "by_name"
	case QueryByCategoryAndName:
		return "by_category_and_name"
	default:
		return "unknown"
	}
}

// ProductQuery is the filter combination behind a product listing or a
// stats request. Category and Name are only meaningful for the kinds that
// use them.
type ProductQuery struct {
	Kind     QueryKind
	Category string
	Name     string
}

// NewProductQuery derives the query shape from optional filters. Nil,
// empty and whitespace-only values count as absent.
func NewProductQuery(category, name *string) ProductQuery {
	c := optional(category)
	n := optional(name)
	switch {
	case c != "" && n != "":
		return ProductQuery{Kind: QueryByCategoryAndName, Category: c, Name: n}
	case c != "":
		return ProductQuery{Kind: QueryByCategory, Category: c}
	case n != "":
		return ProductQuery{Kind: QueryByName, Name: n}
	default:
		return ProductQuery{Kind: QueryAll}
	}
}

// Product list sort fields.
const (
	SortByName          = "name"
	SortByPrice         = "price"
	SortByCreatedAt     = "created_at"
	SortByAverageRating = "average_rating"
	SortByReviewCount   = "review_count"
)

// IsSortableProductField reports whether products can be ordered by field.
func IsSortableProductField(field string) bool {
	switch field {
	case SortByName, SortByPrice, SortByCreatedAt, SortByAverageRating, SortByReviewCount:
		return true
	}
	return false
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
