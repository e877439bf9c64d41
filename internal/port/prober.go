package port

import "context"

// ProbeResult holds what a HEAD request revealed about a remote file.
type ProbeResult struct {
	MimeType  string
	SizeBytes int64
}

// RemoteProber inspects remote assets without downloading them.
type RemoteProber interface {
	Probe(ctx context.Context, url string) (ProbeResult, error)
}

// TokenGen returns a collision resistant token used to name stored files.
type TokenGen func() string
