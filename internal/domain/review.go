package domain

import (
	"time"
)

// Review field limits.
const (
	MaxReviewerNameLength = 100
	MaxCommentLength      = 5000
)

// Review is one rating left on a product.
type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ReviewerName string    `json:"reviewer_name"`
	Comment      string    `json:"comment"`
	Rating       int       `json:"rating"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}
