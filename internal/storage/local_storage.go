package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/spf13/afero"
)

type LocalStorage struct {
	fs afero.Fs
}

// compile-time check: *LocalStorage must satisfy port.Filesystem
var _ port.Filesystem = (*LocalStorage)(nil)

// NewLocalStorage serves files from the directory root on disk.
func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", abs, err)
	}
	return &LocalStorage{fs: afero.NewBasePathFs(afero.NewOsFs(), abs)}, nil
}

// NewLocalStorageFromFs wraps an existing afero filesystem.
func NewLocalStorageFromFs(fs afero.Fs) *LocalStorage {
	return &LocalStorage{fs: fs}
}

func (s *LocalStorage) Move(ctx context.Context, src, destDir, destName string) error {
	dest := path.Join(destDir, destName)
	logger.Debugf(ctx, "moving file %q to %q...", src, dest)

	if err := s.fs.MkdirAll(destDir, 0o755); err != nil {
		return mapFsErr(err)
	}
	if err := s.fs.Rename(src, dest); err == nil {
		return nil
	} else if errors.Is(err, os.ErrNotExist) {
		return mapFsErr(err)
	}

	// rename fails across devices, fall back to copying
	if err := s.copy(src, dest); err != nil {
		return err
	}
	return mapFsErr(s.fs.Remove(src))
}

func (s *LocalStorage) copy(src, dest string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return mapFsErr(err)
	}
	defer func() { _ = in.Close() }()

	out, err := s.fs.Create(dest)
	if err != nil {
		return mapFsErr(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return mapFsErr(err)
	}
	return mapFsErr(out.Close())
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	logger.Debugf(ctx, "removing file %q...", p)
	return mapFsErr(s.fs.Remove(p))
}

func (s *LocalStorage) RemoveAll(ctx context.Context, dir string) error {
	logger.Debugf(ctx, "removing directory %q...", dir)
	return mapFsErr(s.fs.RemoveAll(dir))
}

func (s *LocalStorage) Exists(ctx context.Context, p string) (bool, error) {
	ok, err := afero.Exists(s.fs, p)
	if err != nil {
		return false, mapFsErr(err)
	}
	return ok, nil
}

func (s *LocalStorage) Stat(ctx context.Context, p string) (port.FileInfo, error) {
	logger.Debugf(ctx, "getting stats on file %q...", p)

	info, err := s.fs.Stat(p)
	if err != nil {
		return port.FileInfo{}, mapFsErr(err)
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return port.FileInfo{}, mapFsErr(err)
	}
	defer func() { _ = f.Close() }()

	_, mimeType, err := detect(f)
	if err != nil {
		return port.FileInfo{}, mapFsErr(err)
	}
	return port.FileInfo{SizeBytes: info.Size(), ContentType: mimeType}, nil
}

func (s *LocalStorage) Load(ctx context.Context, p string) (*port.File, error) {
	info, err := s.fs.Stat(p)
	if err != nil {
		return nil, mapFsErr(err)
	}
	if info.IsDir() {
		return nil, port.ErrFileNotFound
	}

	f, err := s.fs.Open(p)
	if err != nil {
		return nil, mapFsErr(err)
	}
	defer func() { _ = f.Close() }()

	ext, mimeType, err := detect(f)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return &port.File{
		Path:         p,
		Extension:    ext,
		MimeType:     mimeType,
		SizeBytes:    info.Size(),
		OriginalName: path.Base(p),
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, p string, r io.Reader, size int64) error {
	logger.Debugf(ctx, "saving file %q...", p)

	if err := s.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return mapFsErr(err)
	}
	out, err := s.fs.Create(p)
	if err != nil {
		return mapFsErr(err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = s.fs.Remove(p)
		return mapFsErr(err)
	}
	return mapFsErr(out.Close())
}

func (s *LocalStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return f, nil
}
