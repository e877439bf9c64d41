package api

import (
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

func GetAssetHandler(renderer port.HTTPRenderer, svc port.AssetGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := assetIDFrom(w, r)
		if !ok {
			return
		}

		raw, etag, err := renderer.RenderGetAsset(r.Context(), svc, id)
		if err != nil {
			writeAssetError(w, err, "Could not get asset details")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached asset #%d", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for asset #%d", id)
	}
}
