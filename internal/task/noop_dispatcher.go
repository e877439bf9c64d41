package task

import (
	"context"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// NoopDispatcher stands in for Dispatcher when Redis is not configured. Remote
// metadata then stays as probed at save time and no previews are generated.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueRefreshRemote(ctx context.Context, id int64) error {
	logger.Debugf(ctx, "task queue disabled, skipping %s for asset #%d", TypeRefreshRemote, id)
	return nil
}

func (d *NoopDispatcher) EnqueueGeneratePreview(ctx context.Context, id int64) error {
	logger.Debugf(ctx, "task queue disabled, skipping %s for asset #%d", TypeGeneratePreview, id)
	return nil
}
