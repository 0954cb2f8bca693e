package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/health"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/middleware"
)

// Services bundles the business logic the API exposes.
type Services struct {
	Catalog       CatalogService
	Aggregation   AggregationService
	Reviews       ReviewService
	Wishlist      WishlistService
	Notifications NotificationService
}

// RouterConfig holds the cross-cutting settings of the router.
type RouterConfig struct {
	ServiceName       string
	Registry          *prometheus.Registry
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
	CategoriesMaxAge  time.Duration

	// WriteLimiter throttles review writes. Nil disables throttling.
	WriteLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(svc Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	if cfg.Registry != nil {
		r.Use(middleware.NewHTTPMetrics(cfg.Registry, cfg.ServiceName).Middleware)
	}
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(logger))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry}))
	}
	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	products := NewProductHandler(svc.Catalog, svc.Aggregation, logger)
	reviews := NewReviewHandler(svc.Reviews, logger)
	wishlist := NewWishlistHandler(svc.Wishlist, logger)
	notifications := NewNotificationHandler(svc.Notifications, logger)

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.WriteLimiter != nil {
		throttle = cfg.WriteLimiter.Middleware
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.ListProducts)
			r.Get("/stats", products.GetProductStats)
			r.Get("/{id}", products.GetProduct)
			r.Get("/{id}/rating-breakdown", products.GetRatingBreakdown)
			r.Get("/{id}/reviews", reviews.ListReviews)
			r.With(throttle).Post("/{id}/reviews", reviews.CreateReview)
		})

		r.With(throttle).Put("/reviews/{id}/helpful", reviews.MarkHelpful)

		r.With(middleware.CacheControl(cfg.CategoriesMaxAge)).Get("/categories", products.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlist.ListProductIDs)
				r.Get("/products", wishlist.ListProducts)
				r.Post("/{productId}/toggle", wishlist.Toggle)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notifications.List)
				r.Delete("/", notifications.DeleteAll)
				r.Get("/unread-count", notifications.UnreadCount)
				r.Put("/read-all", notifications.MarkAllAsRead)
				r.Put("/{id}/read", notifications.MarkAsRead)
				r.Delete("/{id}", notifications.Delete)
			})
		})
	})

	return r
}
