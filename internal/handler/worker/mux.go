package worker

import (
	"context"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/task"
	"github.com/hibiken/asynq"
)

// NewServeMux routes the asset tasks to their handlers. A payload that cannot
// be decoded is dropped without retry.
func NewServeMux(refresher port.RemoteRefresher, previews port.PreviewGenerator) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(WithTaskContext)

	mux.HandleFunc(task.TypeRefreshRemote, func(ctx context.Context, t *asynq.Task) error {
		p, err := parsePayload(ctx, t)
		if err != nil {
			return err
		}
		return RefreshRemoteHandler(ctx, p, refresher)
	})
	mux.HandleFunc(task.TypeGeneratePreview, func(ctx context.Context, t *asynq.Task) error {
		p, err := parsePayload(ctx, t)
		if err != nil {
			return err
		}
		return GeneratePreviewHandler(ctx, p, previews)
	})

	return mux
}

func parsePayload(ctx context.Context, t *asynq.Task) (task.AssetPayload, error) {
	p, err := task.ParseAssetPayload(t)
	if err != nil {
		logger.Errorf(ctx, "❌  Dropping %s task: %v", t.Type(), err)
		return task.AssetPayload{}, fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return p, nil
}
