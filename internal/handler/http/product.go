package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httputil"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	catalog     CatalogService
	aggregation AggregationService
	logger      *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(catalog CatalogService, aggregation AggregationService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:     catalog,
		aggregation: aggregation,
		logger:      logger,
	}
}

// ListProducts handles GET /api/v1/products
// @Summary List products
// @Description Returns one page of products, optionally filtered by category and name
// @Tags products
// @Produce json
// @Param category query string false "Exact category label"
// @Param name query string false "Case-insensitive name substring"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size (max 100)" default(20)
// @Param sort query string false "field,direction; repeatable"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.catalog.ListProducts(r.Context(), optionalQuery(r, "category"), optionalQuery(r, "name"), page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPageResponse(result))
}

// GetProductStats handles GET /api/v1/products/stats
// @Summary Aggregate rating statistics
// @Description Review count and average rating over the products matching the filters
// @Tags products
// @Produce json
// @Param category query string false "Exact category label"
// @Param name query string false "Case-insensitive name substring"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/stats [get]
func (h *ProductHandler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.aggregation.ComputeGlobalStats(r.Context(), optionalQuery(r, "category"), optionalQuery(r, "name"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, stats)
}

// GetProduct handles GET /api/v1/products/{id}
// @Summary Get product detail
// @Description Product with rating stats, breakdown and an optional review summary
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	view, err := h.catalog.GetProductDetail(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, view)
}

// GetRatingBreakdown handles GET /api/v1/products/{id}/rating-breakdown
// @Summary Rating histogram
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id}/rating-breakdown [get]
func (h *ProductHandler) GetRatingBreakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	breakdown, err := h.aggregation.ComputeBreakdown(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, breakdown)
}

// ListCategories handles GET /api/v1/categories
// @Summary List category labels
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, categories)
}
