package asset

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type fileUploaderSrv struct {
	fs           port.Filesystem
	newSessionID func() string
	settings     Settings
}

// compile-time check: *fileUploaderSrv must satisfy port.FileUploader
var _ port.FileUploader = (*fileUploaderSrv)(nil)

// NewFileUploader constructs a FileUploader implementation.
func NewFileUploader(fs port.Filesystem, newSessionID func() string, settings Settings) port.FileUploader {
	return &fileUploaderSrv{fs: fs, newSessionID: newSessionID, settings: settings}
}

// UploadFile stores the incoming file as <uploadDir>/tmp/<session>/<name>.
func (s *fileUploaderSrv) UploadFile(ctx context.Context, in port.UploadFileInput) (port.UploadFileOutput, error) {
	a := model.NewAsset()
	s.settings.apply(a)
	maxSize := a.MaxSizeOrDefault()

	if in.SizeBytes > maxSize {
		return port.UploadFileOutput{}, fmt.Errorf("%w: %d bytes (max size: %d bytes)", ErrFileTooLarge, in.SizeBytes, maxSize)
	}

	a.TempID = s.newSessionID()
	a.TempName = SanitizeFileName(in.OriginalName)
	dest := a.AbsoluteTempPath()

	if err := s.fs.Save(ctx, dest, io.LimitReader(in.Reader, maxSize+1), in.SizeBytes); err != nil {
		return port.UploadFileOutput{}, fmt.Errorf("%w: save %q: %w", ErrFilesystemOperationFailed, dest, err)
	}

	info, err := s.fs.Stat(ctx, dest)
	if err != nil {
		return port.UploadFileOutput{}, fmt.Errorf("%w: stat %q: %w", ErrFilesystemOperationFailed, dest, err)
	}
	if info.SizeBytes > maxSize {
		if err := s.fs.RemoveAll(ctx, a.AbsoluteTempDir()); err != nil {
			logger.Warnf(ctx, "failed to clean up upload session %q: %v", a.TempID, err)
		}
		return port.UploadFileOutput{}, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, maxSize)
	}

	logger.Infof(ctx, "stored upload %q in session %q", a.TempName, a.TempID)

	return port.UploadFileOutput{
		TempID:       a.TempID,
		TempName:     a.TempName,
		OriginalName: in.OriginalName,
		SizeBytes:    info.SizeBytes,
	}, nil
}

// SanitizeFileName keeps the base name of a client supplied file name and
// replaces anything outside [A-Za-z0-9._-].
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, ".")
	if base == "" || base == "_" {
		return "file"
	}
	return base
}
