package middleware

import (
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// WithRequestID reuses an incoming X-Request-Id or lets chi generate one,
// echoes it on the response and exposes it to the logger.
func WithRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chiMiddleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chiMiddleware.GetReqID(r.Context())
			w.Header().Set(chiMiddleware.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(api_context.WithRequestID(r.Context(), id)))
		}))
	}
}
