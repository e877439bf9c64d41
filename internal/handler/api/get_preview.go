package api

import (
	"io"
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

func GetPreviewHandler(svc port.PreviewGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := assetIDFrom(w, r)
		if !ok {
			return
		}

		rc, err := svc.GetPreview(r.Context(), id)
		if err != nil {
			writeAssetError(w, err, "Could not get asset preview")
			return
		}
		defer func() { _ = rc.Close() }()

		w.Header().Set("Content-Type", "image/webp")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, rc); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to stream preview of asset #%d: %v", id, err)
		}
	}
}
