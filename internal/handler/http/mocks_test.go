package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/service"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/health"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httputil"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/middleware"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// =============================================================================
// Mock services
// =============================================================================

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListProducts(ctx context.Context, category, name *string, page pagination.Request) (pagination.Page[domain.ProductView], error) {
	args := m.Called(ctx, category, name, page)
	if args.Get(0) == nil {
		return pagination.Page[domain.ProductView]{}, args.Error(1)
	}
	return args.Get(0).(pagination.Page[domain.ProductView]), args.Error(1)
}

func (m *mockCatalog) GetProductDetail(ctx context.Context, id string) (*domain.ProductView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductView), args.Error(1)
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockAggregation struct{ mock.Mock }

func (m *mockAggregation) ComputeGlobalStats(ctx context.Context, category, name *string) (domain.RatingStats, error) {
	args := m.Called(ctx, category, name)
	if args.Get(0) == nil {
		return domain.RatingStats{}, args.Error(1)
	}
	return args.Get(0).(domain.RatingStats), args.Error(1)
}

func (m *mockAggregation) ComputeBreakdown(ctx context.Context, productID string) (domain.RatingBreakdown, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RatingBreakdown), args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) CreateReview(ctx context.Context, productID string, input *service.CreateReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, productID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviews) ListReviews(ctx context.Context, productID string, page pagination.Request) (pagination.Page[domain.Review], error) {
	args := m.Called(ctx, productID, page)
	if args.Get(0) == nil {
		return pagination.Page[domain.Review]{}, args.Error(1)
	}
	return args.Get(0).(pagination.Page[domain.Review]), args.Error(1)
}

func (m *mockReviews) MarkHelpful(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

type mockWishlist struct{ mock.Mock }

func (m *mockWishlist) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlist) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockWishlist) ListProducts(ctx context.Context, userID string, page pagination.Request) (pagination.Page[domain.ProductView], error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return pagination.Page[domain.ProductView]{}, args.Error(1)
	}
	return args.Get(0).(pagination.Page[domain.ProductView]), args.Error(1)
}

type mockNotifications struct{ mock.Mock }

func (m *mockNotifications) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotifications) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) MarkAsRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotifications) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotifications) DeleteAll(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

const (
	productUUID      = "6f1c2a5e-8d4b-4c1e-9a7f-3b2d1e0c9f8a"
	reviewUUID       = "0b5e8f3a-2c4d-4e6f-8a1b-9c7d5e3f1a2b"
	notificationUUID = "c3d2e1f0-a9b8-4c7d-8e6f-5a4b3c2d1e0f"
)

type testEnv struct {
	catalog       *mockCatalog
	aggregation   *mockAggregation
	reviews       *mockReviews
	wishlist      *mockWishlist
	notifications *mockNotifications
	handler       http.Handler
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv() *testEnv {
	env := &testEnv{
		catalog:       new(mockCatalog),
		aggregation:   new(mockAggregation),
		reviews:       new(mockReviews),
		wishlist:      new(mockWishlist),
		notifications: new(mockNotifications),
	}
	env.handler = NewRouter(Services{
		Catalog:       env.catalog,
		Aggregation:   env.aggregation,
		Reviews:       env.reviews,
		Wishlist:      env.wishlist,
		Notifications: env.notifications,
	}, health.NewHandler(), RouterConfig{
		ServiceName:      "product-review-test",
		Registry:         prometheus.NewRegistry(),
		CORS:             middleware.DefaultCORSConfig(),
		CategoriesMaxAge: 5 * time.Minute,
	}, newTestLogger())
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func asUser(req *http.Request, userID string) *http.Request {
	req.Header.Set(middleware.UserIDHeader, userID)
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }
