package mock

import "context"

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	RefreshCalled bool
	RefreshIDs    []int64
	RefreshErr    error

	PreviewCalled bool
	PreviewIDs    []int64
	PreviewErr    error
}

func (m *MockDispatcher) EnqueueRefreshRemote(ctx context.Context, id int64) error {
	m.RefreshCalled = true
	m.RefreshIDs = append(m.RefreshIDs, id)
	return m.RefreshErr
}

func (m *MockDispatcher) EnqueueGeneratePreview(ctx context.Context, id int64) error {
	m.PreviewCalled = true
	m.PreviewIDs = append(m.PreviewIDs, id)
	return m.PreviewErr
}
