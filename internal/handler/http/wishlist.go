package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httputil"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/middleware"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// WishlistHandler handles the caller's wishlist. Routes are mounted behind
// middleware.RequireUser.
type WishlistHandler struct {
	service WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

// ToggleResponse reports the wishlist state of a product after a toggle.
type ToggleResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// ListProductIDs handles GET /api/v1/wishlist
func (h *WishlistHandler) ListProductIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.ListProductIDs(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ids)
}

// ListProducts handles GET /api/v1/wishlist/products
func (h *WishlistHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.ListProducts(r.Context(), middleware.UserIDFromContext(r.Context()), page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPageResponse(result))
}

// Toggle handles POST /api/v1/wishlist/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	added, err := h.service.Toggle(r.Context(), middleware.UserIDFromContext(r.Context()), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ToggleResponse{ProductID: productID.String(), Wishlisted: added})
}
