package domain

import "time"

// ProductView is the read model returned to clients. RatingBreakdown is
// non-nil only on single-product detail, where a product without reviews
// encodes it as {}; list entries encode null. Summary is set only when a
// summarizer produced one.
type ProductView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Categories      []string        `json:"categories"`
	Price           int64           `json:"price"`
	Currency        string          `json:"currency"`
	ImageURL        string          `json:"image_url"`
	AverageRating   *float64        `json:"average_rating"`
	ReviewCount     int             `json:"review_count"`
	RatingBreakdown RatingBreakdown `json:"rating_breakdown"`
	Summary         *string         `json:"summary,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewProductView builds a list entry from p and stats.
func NewProductView(p Product, stats RatingStats) ProductView {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Categories:    categories,
		Price:         p.Price,
		Currency:      p.Currency,
		ImageURL:      p.ImageURL,
		AverageRating: stats.AverageRating,
		ReviewCount:   stats.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListView builds a list entry from the stats carried on p.
func ListView(p Product) ProductView {
	return NewProductView(p, p.Stats)
}
