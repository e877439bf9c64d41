package mock

import (
	"context"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

// Prober implements port.RemoteProber for tests.
type Prober struct {
	Out port.ProbeResult
	Err error

	Calls  int
	GotURL string
}

func (p *Prober) Probe(ctx context.Context, url string) (port.ProbeResult, error) {
	p.Calls++
	p.GotURL = url
	return p.Out, p.Err
}

// PreviewEncoder implements port.PreviewEncoder for tests.
type PreviewEncoder struct {
	Out []byte
	Err error

	Called      bool
	GotMime     string
	GotMaxWidth int
}

func (e *PreviewEncoder) Encode(mimeType string, src []byte, maxWidth int) ([]byte, error) {
	e.Called = true
	e.GotMime = mimeType
	e.GotMaxWidth = maxWidth
	return e.Out, e.Err
}
