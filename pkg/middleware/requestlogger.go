package middleware

import (
	"log/slog"
	"net/http"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/logger"
)

// RequestLogger stores a logger enriched with the request's correlation,
// user and trace ids in the context, for logger.FromContext downstream.
// Mount it after RequestLogging, Identity and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := UserIDFromContext(ctx); id != "" {
				ctx = logger.WithUserID(ctx, id)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
