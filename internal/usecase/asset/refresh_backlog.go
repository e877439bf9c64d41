package asset

import (
	"context"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type backlogRefresherSrv struct {
	repo  port.AssetRepository
	tasks port.TaskDispatcher
	now   func() time.Time
}

// compile-time check: *backlogRefresherSrv must satisfy port.BacklogRefresher
var _ port.BacklogRefresher = (*backlogRefresherSrv)(nil)

// NewBacklogRefresher constructs a BacklogRefresher implementation.
func NewBacklogRefresher(repo port.AssetRepository, tasks port.TaskDispatcher) port.BacklogRefresher {
	return &backlogRefresherSrv{repo: repo, tasks: tasks, now: time.Now}
}

// RefreshBacklog enqueues a refresh for every remote asset not updated within
// BacklogCutoff.
func (s *backlogRefresherSrv) RefreshBacklog(ctx context.Context) error {
	cutoff := s.now().Add(-BacklogCutoff)
	ids, err := s.repo.ListRemoteUpdatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no remote assets found to refresh")
	}

	for _, id := range ids {
		logger.Infof(ctx, "scheduling refresh for asset #%d", id)
		if err := s.tasks.EnqueueRefreshRemote(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue refresh task for asset #%d: %v", id, err)
		}
	}
	return nil
}
