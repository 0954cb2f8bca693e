package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/service"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httputil"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateReviewRequest is the JSON request body for creating a review.
type CreateReviewRequest struct {
	ReviewerName string `json:"reviewer_name" validate:"required,max=100"`
	Comment      string `json:"comment" validate:"max=5000"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// ListReviews handles GET /api/v1/products/{id}/reviews
// @Summary List a product's reviews
// @Description Newest first
// @Tags reviews
// @Produce json
// @Param id path string true "Product UUID"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.ListReviews(r.Context(), productID.String(), page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPageResponse(result))
}

// CreateReview handles POST /api/v1/products/{id}/reviews
// @Summary Review a product
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Product UUID"
// @Param request body CreateReviewRequest true "Review"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	review, err := h.service.CreateReview(r.Context(), productID.String(), &service.CreateReviewInput{
		ReviewerName: req.ReviewerName,
		Comment:      req.Comment,
		Rating:       req.Rating,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, review)
}

// MarkHelpful handles PUT /api/v1/reviews/{id}/helpful
// @Summary Mark a review helpful
// @Tags reviews
// @Produce json
// @Param id path string true "Review UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/reviews/{id}/helpful [put]
func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	review, err := h.service.MarkHelpful(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, review)
}
