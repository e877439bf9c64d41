package asset

import (
	"context"
	"errors"
	"io"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

type previewGetterSrv struct {
	repo     port.AssetRepository
	fs       port.Filesystem
	settings Settings
}

// compile-time check: *previewGetterSrv must satisfy port.PreviewGetter
var _ port.PreviewGetter = (*previewGetterSrv)(nil)

// NewPreviewGetter constructs a PreviewGetter implementation.
func NewPreviewGetter(repo port.AssetRepository, fs port.Filesystem, settings Settings) port.PreviewGetter {
	return &previewGetterSrv{repo: repo, fs: fs, settings: settings}
}

func (s *previewGetterSrv) GetPreview(ctx context.Context, id int64) (io.ReadCloser, error) {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	s.settings.apply(a)

	if a.IsRemote() || !IsImageExtension(a.Extension) || a.PreviewPath() == "" {
		return nil, ErrNoPreview
	}

	r, err := s.fs.Open(ctx, a.PreviewPath())
	if err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return nil, ErrNoPreview
		}
		return nil, err
	}
	return r, nil
}
