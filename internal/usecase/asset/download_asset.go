package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type downloadTrackerSrv struct {
	repo     port.AssetRepository
	cache    port.Cache
	fs       port.Filesystem
	settings Settings
	now      func() time.Time
}

// compile-time check: *downloadTrackerSrv must satisfy port.DownloadTracker
var _ port.DownloadTracker = (*downloadTrackerSrv)(nil)

// NewDownloadTracker constructs a DownloadTracker implementation.
func NewDownloadTracker(repo port.AssetRepository, cache port.Cache, fs port.Filesystem, settings Settings) port.DownloadTracker {
	return &downloadTrackerSrv{repo: repo, cache: cache, fs: fs, settings: settings, now: time.Now}
}

// DownloadAsset resolves the payload of a published asset and counts the
// download. Counting failures are logged and never block the download.
func (s *downloadTrackerSrv) DownloadAsset(ctx context.Context, in port.DownloadAssetInput) (*port.DownloadAssetOutput, error) {
	a, err := loadAsset(ctx, s.repo, in.ID)
	if err != nil {
		return nil, err
	}
	s.settings.apply(a)

	if !a.IsPublished(s.now()) {
		return nil, ErrAssetNotFound
	}

	out := &port.DownloadAssetOutput{
		FileName: a.OriginalFileName,
		MimeType: a.MimeType,
	}
	if a.IsRemote() {
		out.RedirectURL = a.RemotePath
	} else {
		p := a.AbsolutePath()
		if p == "" {
			return nil, ErrFileNotFound
		}
		r, err := s.fs.Open(ctx, p)
		if err != nil {
			if errors.Is(err, port.ErrFileNotFound) {
				return nil, ErrFileNotFound
			}
			return nil, fmt.Errorf("%w: open %q: %w", ErrFilesystemOperationFailed, p, err)
		}
		out.Reader = r

		// the cached size may be stale; unknown sizes are left at 0
		if info, err := s.fs.Stat(ctx, p); err != nil {
			logger.Debugf(ctx, "failed to stat %q: %v", p, err)
		} else {
			out.SizeBytes = info.SizeBytes
		}
	}
	if out.FileName == "" {
		out.FileName = a.Path
	}

	unique := false
	if in.Visitor != "" {
		if unique, err = s.cache.MarkDownloader(ctx, a.ID, in.Visitor); err != nil {
			logger.Warnf(ctx, "failed to track downloader of asset #%d: %v", a.ID, err)
			unique = false
		}
	}
	if err := s.repo.IncrementDownloadCounts(ctx, a.ID, unique); err != nil {
		logger.Warnf(ctx, "failed to count download of asset #%d: %v", a.ID, err)
	}
	if err := s.cache.DeleteAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%d: %v", a.ID, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%d: %v", a.ID, err)
	}

	return out, nil
}
