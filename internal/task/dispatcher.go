package task

import (
	"context"

	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}

func (d *Dispatcher) EnqueueRefreshRemote(ctx context.Context, id int64) error {
	t, err := NewRefreshRemoteTask(id)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, t)
}

func (d *Dispatcher) EnqueueGeneratePreview(ctx context.Context, id int64) error {
	t, err := NewGeneratePreviewTask(id)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, t)
}

func (d *Dispatcher) enqueue(ctx context.Context, t *asynq.Task) error {
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}
