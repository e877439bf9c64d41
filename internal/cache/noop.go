package cache

import (
	"context"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

// NoopCache is used when no redis server is configured. Every read misses and
// every downloader counts as unique.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetAssetDetails(ctx context.Context, id int64) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagAssetDetails(ctx context.Context, id int64) (string, error) {
	return "", nil
}

func (n *NoopCache) SetAssetDetails(ctx context.Context, id int64, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagAssetDetails(ctx context.Context, id int64, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteAssetDetails(ctx context.Context, id int64) error { return nil }

func (n *NoopCache) DeleteEtagAssetDetails(ctx context.Context, id int64) error {
	return nil
}

func (n *NoopCache) MarkDownloader(ctx context.Context, id int64, visitor string) (bool, error) {
	return true, nil
}
