package mock

import (
	"context"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	Called bool
	Getter port.AssetGetter
	ID     int64
}

func (m *MockHTTPRenderer) RenderGetAsset(ctx context.Context, getter port.AssetGetter, id int64) ([]byte, string, error) {
	m.Called = true
	m.Getter = getter
	m.ID = id
	return m.Data, m.Etag, m.Err
}
