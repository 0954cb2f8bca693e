package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

func newTestReviewService(reviews *mockReviewRepository, products *mockProductRepository, pub *mockPublisher) *ReviewService {
	if pub == nil {
		return NewReviewService(reviews, products, nil, newTestLogger())
	}
	return NewReviewService(reviews, products, pub, newTestLogger())
}

func TestCreateReview_Success(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(reviews, products, pub)
	ctx := context.Background()

	p := phone()
	products.On("FindByID", ctx, "p-1").Return(&p, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
	pub.On("PublishReviewCreated", ctx, mock.AnythingOfType("*domain.Review"), "SmartPhone X").Return(nil)

	review, err := svc.CreateReview(ctx, "p-1", &CreateReviewInput{
		ReviewerName: "  Ada  ",
		Comment:      "Battery lasts two days.",
		Rating:       5,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "p-1", review.ProductID)
	assert.Equal(t, "Ada", review.ReviewerName)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, 0, review.HelpfulCount)
	assert.False(t, review.CreatedAt.IsZero())
	pub.AssertExpectations(t)
}

func TestCreateReview_PublishFailureIsNotFatal(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(reviews, products, pub)

	p := phone()
	products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishReviewCreated", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := svc.CreateReview(context.Background(), "p-1", &CreateReviewInput{ReviewerName: "Ada", Rating: 4})
	assert.NoError(t, err)
}

func TestCreateReview_WithoutProducer(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	svc := newTestReviewService(reviews, products, nil)

	p := phone()
	products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateReview(context.Background(), "p-1", &CreateReviewInput{ReviewerName: "Ada", Rating: 4})
	assert.NoError(t, err)
}

func TestCreateReview_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateReviewInput
		want  string
	}{
		{"rating too low", CreateReviewInput{ReviewerName: "Ada", Rating: 0}, "rating"},
		{"rating too high", CreateReviewInput{ReviewerName: "Ada", Rating: 6}, "rating"},
		{"missing name", CreateReviewInput{ReviewerName: "   ", Rating: 3}, "reviewer name is required"},
		{"long name", CreateReviewInput{ReviewerName: strings.Repeat("a", domain.MaxReviewerNameLength+1), Rating: 3}, "reviewer name"},
		{"long comment", CreateReviewInput{ReviewerName: "Ada", Comment: strings.Repeat("x", domain.MaxCommentLength+1), Rating: 3}, "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(mockReviewRepository)
			products := new(mockProductRepository)
			svc := newTestReviewService(reviews, products, nil)

			in := tt.input
			_, err := svc.CreateReview(context.Background(), "p-1", &in)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
			products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReview_ProductNotFound(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	svc := newTestReviewService(reviews, products, nil)

	products.On("FindByID", mock.Anything, "nope").Return(nil, apperrors.NotFound("product", "nope"))

	_, err := svc.CreateReview(context.Background(), "nope", &CreateReviewInput{ReviewerName: "Ada", Rating: 3})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListReviews(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	svc := newTestReviewService(reviews, products, nil)
	page := pagination.Request{Index: 0, Size: 2}

	p := phone()
	products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	reviews.On("ListByProduct", mock.Anything, "p-1", page).Return(
		pagination.NewPage([]domain.Review{{ID: "r-2"}, {ID: "r-1"}}, 3, page), nil)

	got, err := svc.ListReviews(context.Background(), "p-1", page)

	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 3, got.TotalCount)
	assert.True(t, got.HasNext())
}

func TestListReviews_InvalidPagination(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	svc := newTestReviewService(reviews, products, nil)

	_, err := svc.ListReviews(context.Background(), "p-1", pagination.Request{Index: 0, Size: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

	_, err = svc.ListReviews(context.Background(), "p-1", pagination.Request{Index: 0, Size: 5,
		Sort: []pagination.SortKey{{Field: "rating", Direction: pagination.Desc}}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListReviews_ProductNotFound(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	svc := newTestReviewService(reviews, products, nil)

	products.On("FindByID", mock.Anything, "nope").Return(nil, apperrors.NotFound("product", "nope"))

	_, err := svc.ListReviews(context.Background(), "nope", pagination.Request{Index: 0, Size: 10})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkHelpful(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newTestReviewService(reviews, new(mockProductRepository), nil)

	reviews.On("IncrementHelpful", mock.Anything, "r-1").Return(&domain.Review{ID: "r-1", HelpfulCount: 3}, nil)

	got, err := svc.MarkHelpful(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.HelpfulCount)
}

func TestMarkHelpful_NotFound(t *testing.T) {
	reviews := new(mockReviewRepository)
	svc := newTestReviewService(reviews, new(mockProductRepository), nil)

	reviews.On("IncrementHelpful", mock.Anything, "r-x").Return(nil, apperrors.NotFound("review", "r-x"))

	_, err := svc.MarkHelpful(context.Background(), "r-x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
