package asset

import (
	"context"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type assetUpdaterSrv struct {
	repo       port.AssetRepository
	categories port.CategoryRepository
	lc         *Lifecycle
	tasks      port.TaskDispatcher
	cache      port.Cache
	settings   Settings
}

// compile-time check: *assetUpdaterSrv must satisfy port.AssetUpdater
var _ port.AssetUpdater = (*assetUpdaterSrv)(nil)

// NewAssetUpdater constructs an AssetUpdater implementation.
func NewAssetUpdater(repo port.AssetRepository, categories port.CategoryRepository, lc *Lifecycle, tasks port.TaskDispatcher, cache port.Cache, settings Settings) port.AssetUpdater {
	return &assetUpdaterSrv{repo: repo, categories: categories, lc: lc, tasks: tasks, cache: cache, settings: settings}
}

// UpdateAsset applies in to the stored asset. A new upload replaces the
// current file, which is only removed once the update is persisted.
func (s *assetUpdaterSrv) UpdateAsset(ctx context.Context, id int64, in port.AssetInput) (*model.Asset, error) {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	s.settings.apply(a)
	prevPath := a.Path
	applyInput(a, in)

	if err := s.lc.PrepareForFinalization(ctx, a); err != nil {
		return nil, err
	}
	if a.Alias == "" {
		a.Alias = Slugify(a.Title)
	}
	if err := checkAsset(ctx, s.categories, a); err != nil {
		return nil, err
	}

	if err := s.lc.Finalize(ctx, a); err != nil {
		return nil, err
	}

	a.Revision++
	if err := s.repo.Update(ctx, a); err != nil {
		if a.Path != "" && a.Path != prevPath {
			if rmErr := s.lc.RemoveStoredFile(ctx, a, false); rmErr != nil {
				logger.Warnf(ctx, "failed to remove stored file %q after update failure: %v", a.AbsolutePath(), rmErr)
			}
		}
		a.Path = prevPath
		a.ClearOldPath()
		return nil, fmt.Errorf("failed updating asset #%d: %w", a.ID, err)
	}

	if err := s.lc.RemoveOldFile(ctx, a); err != nil {
		logger.Warnf(ctx, "failed to remove replaced file of asset #%d: %v", a.ID, err)
	}

	if err := s.cache.DeleteAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%d: %v", a.ID, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%d: %v", a.ID, err)
	}

	fileChanged := a.Path != prevPath
	if fileChanged && !a.IsRemote() && IsImageExtension(a.Extension) {
		if err := s.tasks.EnqueueGeneratePreview(ctx, a.ID); err != nil {
			logger.Warnf(ctx, "failed to enqueue preview task for asset #%d: %v", a.ID, err)
		}
	}
	logger.Infof(ctx, "updated asset #%d to revision %d", a.ID, a.Revision)

	return a, nil
}
