package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"golang.org/x/net/context/ctxhttp"
)

// ConnectTimeout bounds connection establishment only. Slow responses are not cut off.
const ConnectTimeout = 5 * time.Second

type HTTPProber struct {
	client *http.Client
}

// compile-time check: *HTTPProber must satisfy port.RemoteProber
var _ port.RemoteProber = (*HTTPProber)(nil)

func NewHTTPProber() *HTTPProber {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: ConnectTimeout}).DialContext
	transport.TLSHandshakeTimeout = ConnectTimeout

	return &HTTPProber{client: &http.Client{Transport: transport}}
}

// NewHTTPProberWithClient is used by tests to inject a client.
func NewHTTPProberWithClient(c *http.Client) *HTTPProber {
	return &HTTPProber{client: c}
}

// Probe issues a HEAD request, following redirects, and reads the content type
// and length headers. Missing headers yield empty values.
func (p *HTTPProber) Probe(ctx context.Context, url string) (port.ProbeResult, error) {
	logger.Debugf(ctx, "probing remote file %q...", url)

	resp, err := ctxhttp.Head(ctx, p.client, url)
	if err != nil {
		return port.ProbeResult{}, fmt.Errorf("HEAD %q failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return port.ProbeResult{}, fmt.Errorf("HEAD %q returned status %d", url, resp.StatusCode)
	}

	mimeType, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	return port.ProbeResult{
		MimeType:  strings.TrimSpace(mimeType),
		SizeBytes: size,
	}, nil
}
