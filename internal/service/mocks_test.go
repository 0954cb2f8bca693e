package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/summary"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) page(args mock.Arguments) (pagination.Page[domain.Product], error) {
	if args.Get(0) == nil {
		return pagination.Page[domain.Product]{}, args.Error(1)
	}
	return args.Get(0).(pagination.Page[domain.Product]), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context, page pagination.Request) (pagination.Page[domain.Product], error) {
	return m.page(m.Called(ctx, page))
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, category string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return m.page(m.Called(ctx, category, page))
}

func (m *mockProductRepository) FindByName(ctx context.Context, sub string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return m.page(m.Called(ctx, sub, page))
}

func (m *mockProductRepository) FindByCategoryAndName(ctx context.Context, category, sub string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return m.page(m.Called(ctx, category, sub, page))
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []string, page pagination.Request) (pagination.Page[domain.Product], error) {
	return m.page(m.Called(ctx, ids, page))
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) stats(args mock.Arguments) (domain.RatingStats, error) {
	if args.Get(0) == nil {
		return domain.RatingStats{}, args.Error(1)
	}
	return args.Get(0).(domain.RatingStats), args.Error(1)
}

func (m *mockStatsRepository) GlobalStats(ctx context.Context) (domain.RatingStats, error) {
	return m.stats(m.Called(ctx))
}

func (m *mockStatsRepository) CategoryStats(ctx context.Context, category string) (domain.RatingStats, error) {
	return m.stats(m.Called(ctx, category))
}

func (m *mockStatsRepository) SearchStats(ctx context.Context, sub string) (domain.RatingStats, error) {
	return m.stats(m.Called(ctx, sub))
}

func (m *mockStatsRepository) CategoryAndSearchStats(ctx context.Context, category, sub string) (domain.RatingStats, error) {
	return m.stats(m.Called(ctx, category, sub))
}

func (m *mockStatsRepository) FindRatingCountsByProduct(ctx context.Context, productID string) ([]domain.RatingCount, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingCount), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID string, page pagination.Request) (pagination.Page[domain.Review], error) {
	args := m.Called(ctx, productID, page)
	if args.Get(0) == nil {
		return pagination.Page[domain.Review]{}, args.Error(1)
	}
	return args.Get(0).(pagination.Page[domain.Review]), args.Error(1)
}

func (m *mockReviewRepository) IncrementHelpful(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) RecentComments(ctx context.Context, productID string, limit int) ([]string, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockWishlistRepository) ListUserIDsByProduct(ctx context.Context, productID string) ([]string, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock collaborators ---

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, req summary.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review, productName string) error {
	args := m.Called(ctx, review, productName)
	return args.Error(0)
}
