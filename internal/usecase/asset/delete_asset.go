package asset

import (
	"context"
	"errors"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type assetDeleterSrv struct {
	repo     port.AssetRepository
	cache    port.Cache
	fs       port.Filesystem
	lc       *Lifecycle
	settings Settings
}

// compile-time check: *assetDeleterSrv must satisfy port.AssetDeleter
var _ port.AssetDeleter = (*assetDeleterSrv)(nil)

// NewAssetDeleter constructs an AssetDeleter implementation.
func NewAssetDeleter(repo port.AssetRepository, cache port.Cache, fs port.Filesystem, lc *Lifecycle, settings Settings) port.AssetDeleter {
	return &assetDeleterSrv{repo: repo, cache: cache, fs: fs, lc: lc, settings: settings}
}

// DeleteAsset removes the stored file and its preview, deletes the record and
// clears the cache.
func (s *assetDeleterSrv) DeleteAsset(ctx context.Context, id int64) error {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return err
	}
	s.settings.apply(a)

	if !a.IsRemote() {
		if err := s.lc.RemoveStoredFile(ctx, a, false); err != nil {
			return err
		}
		if p := a.PreviewPath(); p != "" {
			if err := s.fs.Delete(ctx, p); err != nil && !errors.Is(err, port.ErrFileNotFound) {
				logger.Warnf(ctx, "failed to remove preview %q: %v", p, err)
			}
		}
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}

	if err := s.cache.DeleteAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%d: %v", a.ID, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%d: %v", a.ID, err)
	}

	logger.Infof(ctx, "deleted asset #%d", a.ID)
	return nil
}
