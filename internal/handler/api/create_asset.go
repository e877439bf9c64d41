package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/validation"
)

func CreateAssetHandler(svc port.AssetCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		a, err := svc.CreateAsset(r.Context(), req.toInput())
		if err != nil {
			writeAssetError(w, err, "Could not create asset")
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/assets/%d", a.ID))
		RespondJSON(w, http.StatusCreated, a)
		logger.Infof(r.Context(), "✅  Successfully created asset #%d", a.ID)
	}
}
