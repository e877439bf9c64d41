package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

// Filesystem implements port.Filesystem for tests.
type Filesystem struct {
	// stored values
	StatOut   port.FileInfo
	LoadOut   *port.File
	OpenOut   []byte
	ExistsOut bool
	Saved     []byte

	// captured inputs
	MovedSrc  string
	MovedDest string
	Deleted   []string
	Removed   []string
	Opened    string
	SavedPath string

	// errors
	MoveErr      error
	DeleteErr    error
	RemoveAllErr error
	ExistsErr    error
	StatErr      error
	LoadErr      error
	SaveErr      error
	OpenErr      error

	// call flags
	MoveCalled bool
	SaveCalled bool
}

func (m *Filesystem) Move(ctx context.Context, src, destDir, destName string) error {
	m.MoveCalled = true
	m.MovedSrc = src
	m.MovedDest = destDir + "/" + destName
	return m.MoveErr
}

func (m *Filesystem) Delete(ctx context.Context, path string) error {
	m.Deleted = append(m.Deleted, path)
	return m.DeleteErr
}

func (m *Filesystem) RemoveAll(ctx context.Context, dir string) error {
	m.Removed = append(m.Removed, dir)
	return m.RemoveAllErr
}

func (m *Filesystem) Exists(ctx context.Context, path string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Filesystem) Stat(ctx context.Context, path string) (port.FileInfo, error) {
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatOut, nil
}

func (m *Filesystem) Load(ctx context.Context, path string) (*port.File, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.LoadOut == nil {
		return nil, port.ErrFileNotFound
	}
	return m.LoadOut, nil
}

func (m *Filesystem) Save(ctx context.Context, path string, r io.Reader, size int64) error {
	m.SaveCalled = true
	m.SavedPath = path
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.Saved = data
	return nil
}

func (m *Filesystem) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	m.Opened = path
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return io.NopCloser(bytes.NewReader(m.OpenOut)), nil
}
