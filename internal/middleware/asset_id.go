package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/handler/api"
	"github.com/go-chi/chi/v5"
)

// WithAssetID parses the {id} URL parameter into a positive asset id.
func WithAssetID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := strconv.ParseInt(id, 10, 64)
			if err != nil || parsedID <= 0 {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid asset ID", id), nil)
				return
			}

			// stash it in context and call the real handler
			next.ServeHTTP(w, r.WithContext(api_context.WithAssetID(r.Context(), parsedID)))
		})
	}
}
