package rest

import (
	"net/http"

	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/pkg/resilience"
)

// Recovery converts handler panics into a 500 response instead of tearing
// down the connection.
func Recovery(logger ports.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered in http handler",
					ports.String("path", r.URL.Path),
					ports.Field{Key: "panic", Value: rec})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(APIResponse{
					Success: false,
					Error:   &APIError{Code: "INTERNAL_ERROR", Message: "internal server error"},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestTimeout bounds each request with the handler-level timeout so a
// stuck downstream cannot pin the connection forever.
func RequestTimeout(timeouts *resilience.TimeoutConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := timeouts.HandlerContext(r.Context())
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
