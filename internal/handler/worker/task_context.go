package worker

import (
	"context"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/task"
	"github.com/hibiken/asynq"
)

// WithTaskContext tags the context of every task run with the asynq task id
// and the asset it targets, so worker log lines carry req_id and asset_id.
func WithTaskContext(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		if id, ok := asynq.GetTaskID(ctx); ok {
			ctx = api_context.WithRequestID(ctx, id)
		}
		if p, err := task.ParseAssetPayload(t); err == nil {
			ctx = api_context.WithAssetID(ctx, p.AssetID)
		}
		return next.ProcessTask(ctx, t)
	})
}
