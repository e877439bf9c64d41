package port

import (
	"context"
	"time"
)

// Cache provides caching capabilities for asset retrieval and download tracking.
type Cache interface {
	GetAssetDetails(ctx context.Context, id int64) ([]byte, error)
	GetEtagAssetDetails(ctx context.Context, id int64) (string, error)
	SetAssetDetails(ctx context.Context, id int64, data []byte, validUntil time.Time)
	SetEtagAssetDetails(ctx context.Context, id int64, etag string, validUntil time.Time)
	DeleteAssetDetails(ctx context.Context, id int64) error
	DeleteEtagAssetDetails(ctx context.Context, id int64) error
	// MarkDownloader records visitor for the asset and reports whether it was new.
	MarkDownloader(ctx context.Context, id int64, visitor string) (bool, error)
}
