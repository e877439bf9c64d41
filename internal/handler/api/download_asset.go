package api

import (
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// DownloadAssetHandler streams a local asset or redirects to a remote one.
// With ?stream=1 the payload is served inline instead of as an attachment.
func DownloadAssetHandler(svc port.DownloadTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := assetIDFrom(w, r)
		if !ok {
			return
		}

		out, err := svc.DownloadAsset(r.Context(), port.DownloadAssetInput{ID: id, Visitor: visitorKey(r)})
		if err != nil {
			writeAssetError(w, err, "Could not download asset")
			return
		}

		if out.RedirectURL != "" {
			http.Redirect(w, r, out.RedirectURL, http.StatusFound)
			logger.Infof(r.Context(), "✅  Redirected download of asset #%d", id)
			return
		}
		defer func() { _ = out.Reader.Close() }()

		disposition := "attachment"
		if r.URL.Query().Get("stream") == "1" {
			disposition = "inline"
		}
		if out.FileName != "" {
			disposition = mime.FormatMediaType(disposition, map[string]string{"filename": out.FileName})
		}
		contentType := out.MimeType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", disposition)
		w.Header().Set("Cache-Control", "private, no-cache")
		if out.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(out.SizeBytes, 10))
		}
		w.WriteHeader(http.StatusOK)

		if _, err := io.Copy(w, out.Reader); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to stream asset #%d: %v", id, err)
			return
		}
		logger.Infof(r.Context(), "✅  Successfully served asset #%d", id)
	}
}

// visitorKey identifies a downloader by address and user agent.
func visitorKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return ""
	}
	return host + "|" + r.UserAgent()
}
