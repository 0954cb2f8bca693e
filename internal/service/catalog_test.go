package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/summary"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

type catalogFixture struct {
	products   *mockProductRepository
	stats      *mockStatsRepository
	reviews    *mockReviewRepository
	summarizer *mockSummarizer
}

func newCatalogFixture() *catalogFixture {
	return &catalogFixture{
		products:   new(mockProductRepository),
		stats:      new(mockStatsRepository),
		reviews:    new(mockReviewRepository),
		summarizer: new(mockSummarizer),
	}
}

func (f *catalogFixture) service(withSummary bool) *CatalogService {
	var s summary.Summarizer
	if withSummary {
		s = f.summarizer
	}
	return NewCatalogService(f.products, f.stats, f.reviews, s, newTestLogger())
}

func phone() domain.Product {
	return domain.Product{
		ID:         "p-1",
		Name:       "SmartPhone X",
		Categories: []string{"Electronics", "Sale"},
		Price:      49900,
		Currency:   "USD",
		Stats:      domain.RatingStats{ReviewCount: 4, AverageRating: f64Ptr(4.25)},
	}
}

// --- ListProducts ---

func TestListProducts_SelectsQueryShape(t *testing.T) {
	page := pagination.Request{Index: 0, Size: 10}
	result := pagination.NewPage([]domain.Product{phone()}, 1, page)

	tests := []struct {
		name     string
		category *string
		search   *string
		setup    func(m *mockProductRepository)
	}{
		{"no filters", nil, nil, func(m *mockProductRepository) {
			m.On("FindAll", mock.Anything, page).Return(result, nil)
		}},
		{"blank filters count as absent", strPtr("  "), strPtr(""), func(m *mockProductRepository) {
			m.On("FindAll", mock.Anything, page).Return(result, nil)
		}},
		{"category", strPtr("Electronics"), nil, func(m *mockProductRepository) {
			m.On("FindByCategory", mock.Anything, "Electronics", page).Return(result, nil)
		}},
		{"name", nil, strPtr(" phone "), func(m *mockProductRepository) {
			m.On("FindByName", mock.Anything, "phone", page).Return(result, nil)
		}},
		{"both", strPtr("Electronics"), strPtr("phone"), func(m *mockProductRepository) {
			m.On("FindByCategoryAndName", mock.Anything, "Electronics", "phone", page).Return(result, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()
			tt.setup(f.products)

			got, err := f.service(false).ListProducts(context.Background(), tt.category, tt.search, page)

			require.NoError(t, err)
			require.Len(t, got.Items, 1)
			assert.Equal(t, 1, got.TotalCount)
			assert.Equal(t, "SmartPhone X", got.Items[0].Name)
			assert.Equal(t, 4, got.Items[0].ReviewCount)
			assert.InDelta(t, 4.25, *got.Items[0].AverageRating, 1e-9)
			assert.Nil(t, got.Items[0].RatingBreakdown)
			f.products.AssertExpectations(t)
		})
	}
}

func TestListProducts_EmptyStore(t *testing.T) {
	f := newCatalogFixture()
	page := pagination.Request{Index: 0, Size: 10}
	f.products.On("FindAll", mock.Anything, page).Return(pagination.NewPage[domain.Product](nil, 0, page), nil)

	got, err := f.service(false).ListProducts(context.Background(), nil, nil, page)

	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.NotNil(t, got.Items)
	assert.Equal(t, 0, got.TotalCount)
}

func TestListProducts_InvalidPaginationSkipsStore(t *testing.T) {
	for _, page := range []pagination.Request{
		{Index: 0, Size: 0},
		{Index: -1, Size: 10},
		{Index: 0, Size: pagination.MaxSize + 1},
		{Index: math.MaxInt / 10, Size: 20},
		{Index: 0, Size: 10, Sort: []pagination.SortKey{{Field: "secret", Direction: pagination.Asc}}},
	} {
		f := newCatalogFixture()
		_, err := f.service(false).ListProducts(context.Background(), nil, nil, page)

		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)
		f.products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	}
}

func TestListProducts_AcceptsKnownSort(t *testing.T) {
	f := newCatalogFixture()
	page := pagination.Request{Index: 0, Size: 10, Sort: []pagination.SortKey{{Field: "average_rating", Direction: pagination.Desc}}}
	f.products.On("FindAll", mock.Anything, page).Return(pagination.NewPage[domain.Product](nil, 0, page), nil)

	_, err := f.service(false).ListProducts(context.Background(), nil, nil, page)
	assert.NoError(t, err)
}

func TestListProducts_StorageError(t *testing.T) {
	f := newCatalogFixture()
	page := pagination.Request{Index: 0, Size: 10}
	f.products.On("FindByCategory", mock.Anything, "Books", page).
		Return(nil, apperrors.StorageUnavailable("find products", errors.New("conn reset")))

	_, err := f.service(false).ListProducts(context.Background(), strPtr("Books"), nil, page)

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Contains(t, err.Error(), "by_category")
}

// --- GetProductDetail ---

func ratingRows() []domain.RatingCount {
	return []domain.RatingCount{{Rating: 3, Count: 1}, {Rating: 4, Count: 1}, {Rating: 5, Count: 2}}
}

func TestGetProductDetail_BreakdownAndStats(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	p.Stats = domain.RatingStats{}
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").Return(ratingRows(), nil)

	view, err := f.service(false).GetProductDetail(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, 4, view.ReviewCount)
	require.NotNil(t, view.AverageRating)
	assert.InDelta(t, 4.25, *view.AverageRating, 1e-9)
	assert.Equal(t, domain.RatingBreakdown{3: 1, 4: 1, 5: 2}, view.RatingBreakdown)
	assert.Equal(t, int64(view.ReviewCount), view.RatingBreakdown.Total())
	assert.Nil(t, view.Summary)
}

func TestGetProductDetail_NoReviews(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").Return([]domain.RatingCount{}, nil)

	view, err := f.service(true).GetProductDetail(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, 0, view.ReviewCount)
	assert.Nil(t, view.AverageRating)
	assert.Empty(t, view.RatingBreakdown)
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestGetProductDetail_NotFound(t *testing.T) {
	f := newCatalogFixture()
	f.products.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := f.service(true).GetProductDetail(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

func TestGetProductDetail_StorageErrorNotMasked(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").
		Return(nil, apperrors.StorageUnavailable("rating counts", errors.New("timeout")))

	_, err := f.service(false).GetProductDetail(context.Background(), "p-1")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestGetProductDetail_WithSummary(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").Return(ratingRows(), nil)
	f.reviews.On("RecentComments", mock.Anything, "p-1", summaryCommentLimit).Return([]string{"Great", "Okay"}, nil)
	f.summarizer.On("Summarize", mock.Anything, summary.Request{
		ProductID:   "p-1",
		ProductName: "SmartPhone X",
		ReviewCount: 4,
		Comments:    []string{"Great", "Okay"},
	}).Return("Mostly positive.", nil)

	view, err := f.service(true).GetProductDetail(context.Background(), "p-1")

	require.NoError(t, err)
	require.NotNil(t, view.Summary)
	assert.Equal(t, "Mostly positive.", *view.Summary)
}

func TestGetProductDetail_SummaryFailureIsNotFatal(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").Return(ratingRows(), nil)
	f.reviews.On("RecentComments", mock.Anything, "p-1", summaryCommentLimit).Return([]string{"Great"}, nil)
	f.summarizer.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("circuit breaker is open"))

	view, err := f.service(true).GetProductDetail(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Nil(t, view.Summary)
	assert.Equal(t, 4, view.ReviewCount)
}

func TestGetProductDetail_CommentLoadFailureSkipsSummary(t *testing.T) {
	f := newCatalogFixture()
	p := phone()
	f.products.On("FindByID", mock.Anything, "p-1").Return(&p, nil)
	f.stats.On("FindRatingCountsByProduct", mock.Anything, "p-1").Return(ratingRows(), nil)
	f.reviews.On("RecentComments", mock.Anything, "p-1", summaryCommentLimit).Return(nil, errors.New("timeout"))

	view, err := f.service(true).GetProductDetail(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Nil(t, view.Summary)
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

// --- ListCategories ---

func TestListCategories(t *testing.T) {
	f := newCatalogFixture()
	f.products.On("ListCategories", mock.Anything).Return([]string{"Books", "Electronics"}, nil)

	got, err := f.service(false).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Electronics"}, got)
}

func TestListCategories_EmptyIsNotNil(t *testing.T) {
	f := newCatalogFixture()
	f.products.On("ListCategories", mock.Anything).Return(nil, nil)

	got, err := f.service(false).ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
}
