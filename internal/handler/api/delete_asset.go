package api

import (
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// DeleteAssetHandler deletes an asset by ID.
func DeleteAssetHandler(svc port.AssetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := assetIDFrom(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteAsset(r.Context(), id); err != nil {
			writeAssetError(w, err, "Failed to delete asset")
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted asset #%d", id)
	}
}
