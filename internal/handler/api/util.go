package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	assetUC "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/fhuszti/assets-ms-go/internal/validation"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// assetIDFrom reads the id stored by the WithAssetID middleware and answers
// 400 when the route was mounted without it.
func assetIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := api_context.IDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID is required", nil)
	}
	return id, ok
}

// writeValidationErrors renders struct validation errors as a field to tag map.
func writeValidationErrors(w http.ResponseWriter, errs error) {
	errsJSON, err := validation.ErrorsToJson(errs)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
		return
	}
	RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
	logger.Errorf(context.Background(), "❌  Validation failed: %s", errsJSON)
}

// writeAssetError maps the asset use case errors to HTTP statuses. Anything
// unexpected becomes a 500 with fallback as message.
func writeAssetError(w http.ResponseWriter, err error, fallback string) {
	var verr *assetUC.ValidationError
	switch {
	case errors.As(err, &verr):
		errsJSON, jerr := validation.FieldErrorsToJson(verr.Fields)
		if jerr != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", jerr)
			return
		}
		RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
		logger.Errorf(context.Background(), "❌  Validation failed: %s", errsJSON)
	case errors.Is(err, assetUC.ErrAssetNotFound):
		WriteError(w, http.StatusNotFound, "Asset not found", nil)
	case errors.Is(err, assetUC.ErrCategoryNotFound):
		WriteError(w, http.StatusBadRequest, "Category not found", nil)
	case errors.Is(err, assetUC.ErrFileTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "File is too large", err)
	case errors.Is(err, assetUC.ErrFileNotFound):
		WriteError(w, http.StatusNotFound, "File not found", err)
	case errors.Is(err, assetUC.ErrNoPreview):
		WriteError(w, http.StatusNotFound, "No preview available", nil)
	default:
		WriteError(w, http.StatusInternalServerError, fallback, err)
	}
}
