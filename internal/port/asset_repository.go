package port

import (
	"context"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, id int64) (*model.Asset, error)
	Delete(ctx context.Context, id int64) error
	IncrementDownloadCounts(ctx context.Context, id int64, unique bool) error
	ListRemoteUpdatedBefore(ctx context.Context, before time.Time) ([]int64, error)
}

// CategoryRepository resolves category references.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}
