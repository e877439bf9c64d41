package port

import (
	"context"
	"io"
)

// File describes a stored file as seen by the filesystem backend.
type File struct {
	Path         string
	Extension    string
	MimeType     string
	SizeBytes    int64
	OriginalName string
}

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Filesystem abstracts the storage holding local assets and upload sessions.
// Paths use forward slashes and are relative to the backend root.
type Filesystem interface {
	Move(ctx context.Context, src, destDir, destName string) error
	Delete(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, dir string) error
	Exists(ctx context.Context, path string) (bool, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	Load(ctx context.Context, path string) (*File, error)
	Save(ctx context.Context, path string, r io.Reader, size int64) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
