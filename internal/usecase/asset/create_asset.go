package asset

import (
	"context"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type assetCreatorSrv struct {
	repo       port.AssetRepository
	categories port.CategoryRepository
	lc         *Lifecycle
	tasks      port.TaskDispatcher
	settings   Settings
}

// compile-time check: *assetCreatorSrv must satisfy port.AssetCreator
var _ port.AssetCreator = (*assetCreatorSrv)(nil)

// NewAssetCreator constructs an AssetCreator implementation.
func NewAssetCreator(repo port.AssetRepository, categories port.CategoryRepository, lc *Lifecycle, tasks port.TaskDispatcher, settings Settings) port.AssetCreator {
	return &assetCreatorSrv{repo: repo, categories: categories, lc: lc, tasks: tasks, settings: settings}
}

// CreateAsset builds an asset from an upload session or a remote URL, stores
// its file and persists it.
func (s *assetCreatorSrv) CreateAsset(ctx context.Context, in port.AssetInput) (*model.Asset, error) {
	a := model.NewAsset()
	s.settings.apply(a)
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

	if err := s.repo.Create(ctx, a); err != nil {
		if rmErr := s.lc.RemoveStoredFile(ctx, a, false); rmErr != nil {
			logger.Warnf(ctx, "failed to remove stored file %q after create failure: %v", a.AbsolutePath(), rmErr)
		}
		return nil, fmt.Errorf("failed creating asset: %w", err)
	}
	logger.Infof(ctx, "created %s asset #%d", a.Location(), a.ID)

	if !a.IsRemote() && IsImageExtension(a.Extension) {
		if err := s.tasks.EnqueueGeneratePreview(ctx, a.ID); err != nil {
			logger.Warnf(ctx, "failed to enqueue preview task for asset #%d: %v", a.ID, err)
		}
	}

	return a, nil
}
