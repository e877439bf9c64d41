package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
	now   func() time.Time
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache, now: time.Now}
}

// RenderGetAsset fetches asset details either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderGetAsset(ctx context.Context, getter port.AssetGetter, id int64) ([]byte, string, error) {
	raw, err := r.cache.GetAssetDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagAssetDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetAsset(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}
	etag = assetETag(out.Revision, raw)

	if !out.ValidUntil.After(r.now()) {
		logger.Debugf(ctx, "details of asset #%d already stale, not caching", id)
		return raw, etag, nil
	}
	r.cache.SetAssetDetails(ctx, id, raw, out.ValidUntil)
	r.cache.SetEtagAssetDetails(ctx, id, etag, out.ValidUntil)

	return raw, etag, nil
}

// assetETag changes with every file replacement even when the rendered
// details hash the same.
func assetETag(revision int, raw []byte) string {
	return fmt.Sprintf("\"r%d-%08x\"", revision, crc32.ChecksumIEEE(raw))
}
