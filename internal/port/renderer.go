package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the asset getter use case.
// It provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetAsset returns the cached JSON result and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderGetAsset(ctx context.Context, getter AssetGetter, id int64) ([]byte, string, error)
}

// PreviewEncoder turns an image into a small WebP preview.
type PreviewEncoder interface {
	Encode(mimeType string, src []byte, maxWidth int) ([]byte, error)
}
