package api

import (
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
)

// NotFoundHandler answers routes the router does not know with the usual
// error envelope.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warnf(r.Context(), "no route for %s %s", r.Method, r.URL.Path)
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "This endpoint does not exist"})
	}
}

// MethodNotAllowedHandler is registered for known paths hit with an
// unsupported method.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warnf(r.Context(), "method %s not allowed on %s", r.Method, r.URL.Path)
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "This method is not allowed"})
	}
}
