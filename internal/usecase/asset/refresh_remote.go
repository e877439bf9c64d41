package asset

import (
	"context"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type remoteRefresherSrv struct {
	repo  port.AssetRepository
	lc    *Lifecycle
	cache port.Cache
}

// compile-time check: *remoteRefresherSrv must satisfy port.RemoteRefresher
var _ port.RemoteRefresher = (*remoteRefresherSrv)(nil)

// NewRemoteRefresher constructs a RemoteRefresher implementation.
func NewRemoteRefresher(repo port.AssetRepository, lc *Lifecycle, cache port.Cache) port.RemoteRefresher {
	return &remoteRefresherSrv{repo: repo, lc: lc, cache: cache}
}

// RefreshRemote probes the URL of a remote asset again and persists the
// result. A failed probe leaves the metadata empty, like Finalize does.
func (s *remoteRefresherSrv) RefreshRemote(ctx context.Context, id int64) error {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if !a.IsRemote() {
		return fmt.Errorf("%w: asset #%d", ErrNotRemote, a.ID)
	}

	info, err := s.lc.ResolveFileInfo(ctx, a)
	if err != nil {
		logger.Warnf(ctx, "%v: %s: %v", ErrRemoteProbeDegraded, a.RemotePath, err)
	}
	a.SetDerived(info)

	if err := s.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("failed updating asset #%d: %w", a.ID, err)
	}
	if err := s.cache.DeleteAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset #%d: %v", a.ID, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, a.ID); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset #%d: %v", a.ID, err)
	}

	logger.Infof(ctx, "refreshed remote asset #%d: %s, %d bytes", a.ID, a.MimeType, a.Size)
	return nil
}
