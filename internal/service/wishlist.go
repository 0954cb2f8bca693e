package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// WishlistService manages the products a user has saved.
type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
		logger:    logger,
	}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.InvalidInput("user id is required")
	}
	return nil
}

// Toggle removes productID from the wishlist when present and adds it
// otherwise. It reports whether the product is now on the list.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}

	removed, err := s.wishlists.Remove(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "wishlist item removed",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
		)
		return false, nil
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}

	item := &domain.WishlistItem{UserID: userID, ProductID: productID, CreatedAt: time.Now().UTC()}
	if err := s.wishlists.Add(ctx, item); err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "wishlist item added",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)
	return true, nil
}

// ListProductIDs returns the ids on the user's wishlist, newest first.
func (s *WishlistService) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	ids, err := s.wishlists.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ListProducts returns one page of the user's wishlisted products with
// their review stats.
func (s *WishlistService) ListProducts(ctx context.Context, userID string, page pagination.Request) (pagination.Page[domain.ProductView], error) {
	if err := validatePage(page, domain.IsSortableProductField); err != nil {
		return pagination.Page[domain.ProductView]{}, err
	}

	ids, err := s.ListProductIDs(ctx, userID)
	if err != nil {
		return pagination.Page[domain.ProductView]{}, err
	}
	if len(ids) == 0 {
		return pagination.NewPage[domain.ProductView](nil, 0, page), nil
	}

	result, err := s.products.FindByIDs(ctx, ids, page)
	if err != nil {
		return pagination.Page[domain.ProductView]{}, fmt.Errorf("list wishlist products: %w", err)
	}
	return pagination.Map(result, domain.ListView), nil
}
