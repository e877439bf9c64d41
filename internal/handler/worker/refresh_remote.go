package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/task"
	assetUC "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

// RefreshRemoteHandler handles a refresh-remote task.
// An asset that was deleted or moved to local storage since the task was
// enqueued is not retried.
func RefreshRemoteHandler(ctx context.Context, p task.AssetPayload, svc port.RemoteRefresher) error {
	if err := svc.RefreshRemote(ctx, p.AssetID); err != nil {
		if errors.Is(err, assetUC.ErrAssetNotFound) || errors.Is(err, assetUC.ErrNotRemote) {
			logger.Warnf(ctx, "⚠️  Skipping refresh of asset #%d: %v", p.AssetID, err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		logger.Errorf(ctx, "❌  Failed to refresh remote asset #%d: %v", p.AssetID, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully refreshed remote asset #%d", p.AssetID)
	return nil
}
