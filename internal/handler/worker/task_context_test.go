package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/task"
	"github.com/hibiken/asynq"
)

func TestWithTaskContext(t *testing.T) {
	valid, err := task.NewGeneratePreviewTask(15)
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	tests := []struct {
		name      string
		task      *asynq.Task
		wantID    int64
		wantFound bool
	}{
		{"asset payload", valid, 15, true},
		{"malformed payload", asynq.NewTask(task.TypeGeneratePreview, []byte("{")), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wantErr := errors.New("inner")
			var gotID int64
			var found bool
			inner := asynq.HandlerFunc(func(ctx context.Context, _ *asynq.Task) error {
				gotID, found = api_context.IDFromContext(ctx)
				return wantErr
			})

			err := WithTaskContext(inner).ProcessTask(context.Background(), tc.task)

			if !errors.Is(err, wantErr) {
				t.Errorf("err = %v; want inner error", err)
			}
			if found != tc.wantFound || gotID != tc.wantID {
				t.Errorf("asset id = %d, %v; want %d, %v", gotID, found, tc.wantID, tc.wantFound)
			}
		})
	}
}
