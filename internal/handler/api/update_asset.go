package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/validation"
)

func UpdateAssetHandler(svc port.AssetUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := assetIDFrom(w, r)
		if !ok {
			return
		}

		var req AssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			writeValidationErrors(w, errs)
			return
		}

		a, err := svc.UpdateAsset(r.Context(), id, req.toInput())
		if err != nil {
			writeAssetError(w, err, "Could not update asset")
			return
		}

		RespondJSON(w, http.StatusOK, a)
		logger.Infof(r.Context(), "✅  Successfully updated asset #%d", id)
	}
}
