package asset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fhuszti/assets-ms-go/internal/bytesize"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// Lifecycle moves asset payloads from a pending upload to permanent storage
// and answers size and type questions for either storage mode.
type Lifecycle struct {
	fs     port.Filesystem
	prober port.RemoteProber
	token  port.TokenGen
}

func NewLifecycle(fs port.Filesystem, prober port.RemoteProber, token port.TokenGen) *Lifecycle {
	return &Lifecycle{fs: fs, prober: prober, token: token}
}

// PendingFile returns the file attached to a. A local asset without one picks
// up the file of its upload session when it exists.
func (l *Lifecycle) PendingFile(ctx context.Context, a *model.Asset) (*model.PendingFile, error) {
	if p := a.Pending(); p != nil {
		return p, nil
	}
	if a.IsRemote() {
		return nil, nil
	}

	tmp := a.AbsoluteTempPath()
	if tmp == "" {
		return nil, nil
	}
	ok, err := l.fs.Exists(ctx, tmp)
	if err != nil {
		return nil, fmt.Errorf("%w: check %q: %w", ErrFilesystemOperationFailed, tmp, err)
	}
	if !ok {
		return nil, nil
	}

	p := &model.PendingFile{Path: tmp, OriginalName: a.TempName}
	a.AttachFile(p)
	return p, nil
}

// PrepareForFinalization derives the title, the original file name and the
// generated storage name. It is a no-op without a pending file or remote URL.
func (l *Lifecycle) PrepareForFinalization(ctx context.Context, a *model.Asset) error {
	p, err := l.PendingFile(ctx, a)
	if err != nil {
		return err
	}

	switch {
	case p != nil:
		if p.OriginalName != "" {
			a.OriginalFileName = p.OriginalName
		}
		if a.Title == "" {
			a.Title = a.OriginalFileName
		}

		ext := ""
		f, err := l.fs.Load(ctx, p.Path)
		switch {
		case err == nil:
			ext = f.Extension
		case !errors.Is(err, port.ErrFileNotFound):
			return fmt.Errorf("%w: load %q: %w", ErrFilesystemOperationFailed, p.Path, err)
		}
		if ext == "" {
			ext = extensionOf(a.OriginalFileName)
		}

		name := l.token()
		if ext != "" {
			name += "." + ext
		}
		a.SetPath(name)

	case a.IsRemote() && a.RemotePath != "":
		name := remoteBaseName(a.RemotePath)
		a.OriginalFileName = name
		if a.Title == "" {
			a.Title = name
		}
	}

	return nil
}

// Finalize commits the pending file to the upload directory, or probes the
// remote URL, and caches the derived metadata. Filesystem failures are
// returned; remote probe failures only leave the metadata empty. A replaced
// file stays in place until RemoveOldFile is called.
func (l *Lifecycle) Finalize(ctx context.Context, a *model.Asset) error {
	p := a.Pending()
	if p == nil {
		if !a.IsRemote() {
			return nil
		}
		info, err := l.ResolveFileInfo(ctx, a)
		if err != nil {
			logger.Warnf(ctx, "%v: %s: %v", ErrRemoteProbeDegraded, a.RemotePath, err)
		}
		a.SetDerived(info)
		return nil
	}

	if a.Path == "" {
		return ErrNotPrepared
	}

	if err := l.fs.Move(ctx, p.Path, a.UploadDirOrDefault(), a.Path); err != nil {
		return fmt.Errorf("%w: move %q: %w", ErrFilesystemOperationFailed, p.Path, err)
	}

	info, err := l.ResolveFileInfo(ctx, a)
	if err != nil {
		return fmt.Errorf("%w: probe %q: %w", ErrFilesystemOperationFailed, a.AbsolutePath(), err)
	}
	a.SetDerived(info)

	if dir := a.AbsoluteTempDir(); dir != "" {
		if err := l.fs.RemoveAll(ctx, dir); err != nil {
			return fmt.Errorf("%w: remove %q: %w", ErrFilesystemOperationFailed, dir, err)
		}
	}

	a.ReleasePending()
	return nil
}

// RemoveOldFile deletes the file stashed by a file replacement or a switch to
// remote storage, together with its preview. Call it once the asset holding
// the new location is persisted.
func (l *Lifecycle) RemoveOldFile(ctx context.Context, a *model.Asset) error {
	old := a.OldAbsolutePath()
	if old == "" {
		return nil
	}

	ok, err := l.fs.Exists(ctx, old)
	if err != nil {
		return fmt.Errorf("%w: check %q: %w", ErrFilesystemOperationFailed, old, err)
	}
	if ok {
		if err := l.fs.Delete(ctx, old); err != nil {
			return fmt.Errorf("%w: delete %q: %w", ErrFilesystemOperationFailed, old, err)
		}
	}
	if err := l.fs.Delete(ctx, old+model.PreviewSuffix); err != nil && !errors.Is(err, port.ErrFileNotFound) {
		logger.Warnf(ctx, "failed to remove preview of %q: %v", old, err)
	}

	a.ClearOldPath()
	return nil
}

// RemoveStoredFile deletes the session file (useTemp) or the permanent file.
// A path that cannot be resolved or does not exist is not an error.
func (l *Lifecycle) RemoveStoredFile(ctx context.Context, a *model.Asset, useTemp bool) error {
	p := a.AbsolutePath()
	if useTemp {
		p = a.AbsoluteTempPath()
	}
	if p == "" {
		return nil
	}

	ok, err := l.fs.Exists(ctx, p)
	if err != nil {
		return fmt.Errorf("%w: check %q: %w", ErrFilesystemOperationFailed, p, err)
	}
	if !ok {
		return nil
	}
	if err := l.fs.Delete(ctx, p); err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return nil
		}
		return fmt.Errorf("%w: delete %q: %w", ErrFilesystemOperationFailed, p, err)
	}
	return nil
}

// LoadFile loads the permanent file, or the session file when temp is set.
// It returns nil without error when there is no such file.
func (l *Lifecycle) LoadFile(ctx context.Context, a *model.Asset, temp bool) (*port.File, error) {
	p := a.AbsolutePath()
	if temp {
		p = a.AbsoluteTempPath()
	}
	if p == "" {
		return nil, nil
	}

	f, err := l.fs.Load(ctx, p)
	if err != nil {
		if errors.Is(err, port.ErrFileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

// resolveLocalFile loads the permanent file, falling back to the session file.
func (l *Lifecycle) resolveLocalFile(ctx context.Context, a *model.Asset) (*port.File, error) {
	f, err := l.LoadFile(ctx, a, false)
	if err != nil || f != nil {
		return f, err
	}
	return l.LoadFile(ctx, a, true)
}

// ResolveFileType returns the extension of the asset without the dot, or ""
// when no file can be resolved.
func (l *Lifecycle) ResolveFileType(ctx context.Context, a *model.Asset) string {
	if a.IsRemote() {
		return remoteExtension(a.RemotePath)
	}

	f, err := l.resolveLocalFile(ctx, a)
	if err != nil {
		logger.Warnf(ctx, "failed to load file of asset #%d: %v", a.ID, err)
		return ""
	}
	if f == nil {
		return ""
	}
	if f.Extension != "" {
		return f.Extension
	}
	return extensionOf(a.Path)
}

// ResolveFileInfo probes the source of the asset. For remote assets a probe
// error comes back along with the extension, which never needs the network.
func (l *Lifecycle) ResolveFileInfo(ctx context.Context, a *model.Asset) (model.DerivedInfo, error) {
	if a.IsRemote() {
		info := model.DerivedInfo{Extension: remoteExtension(a.RemotePath)}
		if a.RemotePath == "" {
			return info, nil
		}
		res, err := l.prober.Probe(ctx, a.RemotePath)
		if err != nil {
			return info, err
		}
		info.MimeType = res.MimeType
		info.Size = res.SizeBytes
		return info, nil
	}

	f, err := l.resolveLocalFile(ctx, a)
	if err != nil {
		return model.DerivedInfo{}, err
	}
	if f == nil {
		return model.DerivedInfo{}, ErrFileNotFound
	}
	ext := f.Extension
	if ext == "" {
		ext = extensionOf(a.Path)
	}
	return model.DerivedInfo{Extension: ext, MimeType: f.MimeType, Size: f.SizeBytes}, nil
}

// ResolveMimeType returns the MIME type reported by the source, or "".
func (l *Lifecycle) ResolveMimeType(ctx context.Context, a *model.Asset) string {
	if a.IsRemote() {
		if a.RemotePath == "" {
			return ""
		}
		res, err := l.prober.Probe(ctx, a.RemotePath)
		if err != nil {
			logger.Warnf(ctx, "%v: %s: %v", ErrRemoteProbeDegraded, a.RemotePath, err)
			return ""
		}
		return res.MimeType
	}

	f, err := l.resolveLocalFile(ctx, a)
	if err != nil || f == nil {
		return ""
	}
	return f.MimeType
}

// Size returns the cached size unless it is 0 or force is set, in which case
// the source is probed again and the result cached. It is 0 when nothing can
// be resolved.
func (l *Lifecycle) Size(ctx context.Context, a *model.Asset, force bool) int64 {
	if a.Size != 0 && !force {
		return a.Size
	}

	var size int64
	if a.IsRemote() {
		if a.RemotePath != "" {
			res, err := l.prober.Probe(ctx, a.RemotePath)
			if err != nil {
				logger.Warnf(ctx, "%v: %s: %v", ErrRemoteProbeDegraded, a.RemotePath, err)
			}
			size = res.SizeBytes
		}
	} else {
		f, err := l.LoadFile(ctx, a, false)
		if err != nil {
			logger.Warnf(ctx, "failed to load file of asset #%d: %v", a.ID, err)
		}
		if f != nil {
			size = f.SizeBytes
		}
	}

	a.SetDerived(model.DerivedInfo{Extension: a.Extension, MimeType: a.MimeType, Size: size})
	return size
}

// HumanSize is Size formatted with binary prefixes, unit being "GB", "MB",
// "KB" or "" for automatic.
func (l *Lifecycle) HumanSize(ctx context.Context, a *model.Asset, force bool, unit string) string {
	return bytesize.FormatHuman(l.Size(ctx, a, force), unit)
}

func extensionOf(name string) string {
	return strings.TrimPrefix(path.Ext(name), ".")
}

func remoteExtension(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return extensionOf(u.Path)
}

func remoteBaseName(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" && u.Path != "/" {
		return path.Base(u.Path)
	}
	return path.Base(raw)
}
