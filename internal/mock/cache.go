package mock

import (
	"context"
	"time"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	AssetOut []byte

	// etag values
	EtagAsset string

	// download tracking
	NewDownloader bool
	Downloaders   []string

	// errors
	GetAssetErr     error
	GetEtagAssetErr error
	DelAssetErr     error
	DelEtagAssetErr error
	MarkErr         error

	// call flags
	GetAssetCalled     bool
	GetEtagAssetCalled bool
	SetAssetCalled     bool
	SetEtagAssetCalled bool
	DelAssetCalled     bool
	DelEtagAssetCalled bool
	MarkCalled         bool
}

func (c *Cache) GetAssetDetails(ctx context.Context, id int64) ([]byte, error) {
	c.GetAssetCalled = true
	if c.GetAssetErr != nil {
		return nil, c.GetAssetErr
	}
	return c.AssetOut, nil
}

func (c *Cache) GetEtagAssetDetails(ctx context.Context, id int64) (string, error) {
	c.GetEtagAssetCalled = true
	if c.GetEtagAssetErr != nil {
		return "", c.GetEtagAssetErr
	}
	return c.EtagAsset, nil
}

func (c *Cache) SetAssetDetails(ctx context.Context, id int64, data []byte, validUntil time.Time) {
	c.SetAssetCalled = true
	c.AssetOut = data
}

func (c *Cache) SetEtagAssetDetails(ctx context.Context, id int64, etag string, validUntil time.Time) {
	c.SetEtagAssetCalled = true
	c.EtagAsset = etag
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id int64) error {
	c.DelAssetCalled = true
	return c.DelAssetErr
}

func (c *Cache) DeleteEtagAssetDetails(ctx context.Context, id int64) error {
	c.DelEtagAssetCalled = true
	return c.DelEtagAssetErr
}

func (c *Cache) MarkDownloader(ctx context.Context, id int64, visitor string) (bool, error) {
	c.MarkCalled = true
	c.Downloaders = append(c.Downloaders, visitor)
	if c.MarkErr != nil {
		return false, c.MarkErr
	}
	return c.NewDownloader, nil
}
