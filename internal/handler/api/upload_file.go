package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// multipartOverhead leaves room for the multipart envelope around the file.
const multipartOverhead = 1 << 20

// UploadFileHandler stores the multipart field "file" in a new upload session.
func UploadFileHandler(svc port.FileUploader, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				WriteError(w, http.StatusRequestEntityTooLarge, "File is too large", err)
				return
			}
			WriteError(w, http.StatusBadRequest, "file is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		out, err := svc.UploadFile(r.Context(), port.UploadFileInput{
			OriginalName: header.Filename,
			Reader:       file,
			SizeBytes:    header.Size,
		})
		if err != nil {
			writeAssetError(w, err, "Could not store uploaded file")
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(context.Background(), "✅  Successfully stored upload %q in session %q", out.TempName, out.TempID)
	}
}
