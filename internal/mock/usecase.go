package mock

import (
	"context"
	"io"

	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// MockAssetGetter implements port.AssetGetter for tests.
type MockAssetGetter struct {
	Out    *port.GetAssetOutput
	Err    error
	Called bool
}

func (m *MockAssetGetter) GetAsset(ctx context.Context, id int64) (*port.GetAssetOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockFileUploader implements port.FileUploader for tests.
type MockFileUploader struct {
	Out port.UploadFileOutput
	Err error

	Called  bool
	GotName string
	GotData []byte
}

func (m *MockFileUploader) UploadFile(ctx context.Context, in port.UploadFileInput) (port.UploadFileOutput, error) {
	m.Called = true
	m.GotName = in.OriginalName
	if in.Reader != nil {
		m.GotData, _ = io.ReadAll(in.Reader)
	}
	return m.Out, m.Err
}

// MockAssetCreator implements port.AssetCreator for tests.
type MockAssetCreator struct {
	Out *model.Asset
	Err error

	Called bool
	GotIn  port.AssetInput
}

func (m *MockAssetCreator) CreateAsset(ctx context.Context, in port.AssetInput) (*model.Asset, error) {
	m.Called = true
	m.GotIn = in
	return m.Out, m.Err
}

// MockAssetUpdater implements port.AssetUpdater for tests.
type MockAssetUpdater struct {
	Out *model.Asset
	Err error

	Called bool
	GotID  int64
	GotIn  port.AssetInput
}

func (m *MockAssetUpdater) UpdateAsset(ctx context.Context, id int64, in port.AssetInput) (*model.Asset, error) {
	m.Called = true
	m.GotID = id
	m.GotIn = in
	return m.Out, m.Err
}

// MockAssetDeleter implements port.AssetDeleter for tests.
type MockAssetDeleter struct {
	Err    error
	Called bool
	GotID  int64
}

func (m *MockAssetDeleter) DeleteAsset(ctx context.Context, id int64) error {
	m.Called = true
	m.GotID = id
	return m.Err
}

// MockDownloadTracker implements port.DownloadTracker for tests.
type MockDownloadTracker struct {
	Out *port.DownloadAssetOutput
	Err error

	Called bool
	GotIn  port.DownloadAssetInput
}

func (m *MockDownloadTracker) DownloadAsset(ctx context.Context, in port.DownloadAssetInput) (*port.DownloadAssetOutput, error) {
	m.Called = true
	m.GotIn = in
	return m.Out, m.Err
}

// MockPreviewGetter implements port.PreviewGetter for tests.
type MockPreviewGetter struct {
	Out io.ReadCloser
	Err error

	Called bool
	GotID  int64
}

func (m *MockPreviewGetter) GetPreview(ctx context.Context, id int64) (io.ReadCloser, error) {
	m.Called = true
	m.GotID = id
	return m.Out, m.Err
}

// MockRemoteRefresher implements port.RemoteRefresher for tests.
type MockRemoteRefresher struct {
	Err    error
	Called bool
	GotID  int64
}

func (m *MockRemoteRefresher) RefreshRemote(ctx context.Context, id int64) error {
	m.Called = true
	m.GotID = id
	return m.Err
}

// MockPreviewGenerator implements port.PreviewGenerator for tests.
type MockPreviewGenerator struct {
	Err    error
	Called bool
	GotID  int64
}

func (m *MockPreviewGenerator) GeneratePreview(ctx context.Context, id int64) error {
	m.Called = true
	m.GotID = id
	return m.Err
}
