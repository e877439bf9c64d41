package middleware

import (
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/handler/api"
	"github.com/fhuszti/assets-ms-go/internal/logger"
)

// RequireRole rejects authenticated callers that lack role. Requests without
// an authenticated user pass through, which only happens when WithDSTAuth
// runs without a public key.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := api_context.AuthUserIDFromContext(ctx); !ok || role == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !api_context.HasRole(ctx, role) {
				logger.Warnf(ctx, "caller lacks role %q for %s %s", role, r.Method, r.URL.Path)
				api.WriteError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
