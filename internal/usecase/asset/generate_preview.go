package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type previewGeneratorSrv struct {
	repo     port.AssetRepository
	fs       port.Filesystem
	encoder  port.PreviewEncoder
	settings Settings
}

// compile-time check: *previewGeneratorSrv must satisfy port.PreviewGenerator
var _ port.PreviewGenerator = (*previewGeneratorSrv)(nil)

// NewPreviewGenerator constructs a PreviewGenerator implementation.
func NewPreviewGenerator(repo port.AssetRepository, fs port.Filesystem, encoder port.PreviewEncoder, settings Settings) port.PreviewGenerator {
	return &previewGeneratorSrv{repo: repo, fs: fs, encoder: encoder, settings: settings}
}

// GeneratePreview writes a WebP thumbnail next to the file of a local image
// asset. Other assets are skipped.
func (s *previewGeneratorSrv) GeneratePreview(ctx context.Context, id int64) error {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return err
	}
	s.settings.apply(a)

	if a.IsRemote() || !IsImageExtension(a.Extension) || a.Path == "" {
		logger.Infof(ctx, "asset #%d is not a local image, skipping preview", a.ID)
		return nil
	}

	src := a.AbsolutePath()
	r, err := s.fs.Open(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", src, err)
	}
	data, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", src, err)
	}

	out, err := s.encoder.Encode(a.MimeType, data, PreviewMaxWidth)
	if err != nil {
		return fmt.Errorf("failed to encode preview of asset #%d: %w", a.ID, err)
	}

	dest := a.PreviewPath()
	if err := s.fs.Save(ctx, dest, bytes.NewReader(out), int64(len(out))); err != nil {
		return fmt.Errorf("%w: save %q: %w", ErrFilesystemOperationFailed, dest, err)
	}

	logger.Infof(ctx, "generated preview for asset #%d (%d bytes)", a.ID, len(out))
	return nil
}
