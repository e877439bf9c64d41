package port

import "context"

// TaskDispatcher enqueues asynchronous tasks related to asset processing.
type TaskDispatcher interface {
	EnqueueRefreshRemote(ctx context.Context, id int64) error
	EnqueueGeneratePreview(ctx context.Context, id int64) error
}
