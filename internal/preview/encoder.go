// Package preview renders the small WebP thumbnails shown for image assets.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const defaultQuality = 80

var ErrUnsupportedImage = errors.New("preview: unsupported image type")

// WebPCodec decodes the source image and encodes the preview.
type WebPCodec interface {
	Encode(img image.Image, quality int, w io.Writer) error
	Decode(r io.Reader) (image.Image, string, error)
}

type Encoder struct {
	codec   WebPCodec
	quality int
}

// compile-time check: *Encoder must satisfy port.PreviewEncoder
var _ port.PreviewEncoder = (*Encoder)(nil)

func NewEncoder(codec WebPCodec) *Encoder {
	return &Encoder{codec: codec, quality: defaultQuality}
}

// Encode decodes src, scales it down to maxWidth keeping the aspect ratio and
// returns it as lossy WebP. Narrower images keep their size.
func (e *Encoder) Encode(mimeType string, src []byte, maxWidth int) ([]byte, error) {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, mimeType)
	}

	img, _, err := e.codec.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("preview: failed to decode image: %w", err)
	}

	img = scaleToWidth(img, maxWidth)

	buf := &bytes.Buffer{}
	if err := e.codec.Encode(img, e.quality, buf); err != nil {
		return nil, fmt.Errorf("preview: failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleToWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

type webpCodec struct{}

// NewWebPCodec returns the codec backed by libwebp.
func NewWebPCodec() WebPCodec {
	return webpCodec{}
}

func (webpCodec) Encode(img image.Image, quality int, w io.Writer) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}

func (webpCodec) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}
