package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// ReviewEventPublisher announces new reviews.
type ReviewEventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review, productName string) error
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	producer ReviewEventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service. producer may be nil, in
// which case no events are published.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, producer ReviewEventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ReviewerName string
	Comment      string
	Rating       int
}

func (in *CreateReviewInput) normalize() error {
	in.ReviewerName = strings.TrimSpace(in.ReviewerName)
	in.Comment = strings.TrimSpace(in.Comment)

	if !domain.IsValidRating(in.Rating) {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if in.ReviewerName == "" {
		return apperrors.InvalidInput("reviewer name is required")
	}
	if utf8.RuneCountInString(in.ReviewerName) > domain.MaxReviewerNameLength {
		return apperrors.InvalidInput(fmt.Sprintf("reviewer name must be at most %d characters", domain.MaxReviewerNameLength))
	}
	if utf8.RuneCountInString(in.Comment) > domain.MaxCommentLength {
		return apperrors.InvalidInput(fmt.Sprintf("comment must be at most %d characters", domain.MaxCommentLength))
	}
	return nil
}

// CreateReview stores a new review for productID and publishes a
// review.created event.
func (s *ReviewService) CreateReview(ctx context.Context, productID string, input *CreateReviewInput) (*domain.Review, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	review := &domain.Review{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		ReviewerName: input.ReviewerName,
		Comment:      input.Comment,
		Rating:       input.Rating,
		HelpfulCount: 0,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishReviewCreated(ctx, review, product.Name); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListReviews returns one page of a product's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, page pagination.Request) (pagination.Page[domain.Review], error) {
	if err := validatePage(page, nil); err != nil {
		return pagination.Page[domain.Review]{}, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return pagination.Page[domain.Review]{}, fmt.Errorf("list reviews: %w", err)
	}

	result, err := s.reviews.ListByProduct(ctx, productID, page)
	if err != nil {
		return pagination.Page[domain.Review]{}, fmt.Errorf("list reviews: %w", err)
	}
	return result, nil
}

// MarkHelpful increments the helpful counter of a review and returns it.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (*domain.Review, error) {
	review, err := s.reviews.IncrementHelpful(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("mark review helpful: %w", err)
	}
	return review, nil
}
