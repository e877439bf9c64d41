package asset

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/storage"
	"github.com/spf13/afero"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

var binBytes = []byte{0x00, 0x01, 0x02, 0x03}

type fakeProber struct {
	res    port.ProbeResult
	err    error
	calls  int
	gotURL string
}

func (p *fakeProber) Probe(ctx context.Context, url string) (port.ProbeResult, error) {
	p.calls++
	p.gotURL = url
	return p.res, p.err
}

func fixedToken() string { return "tok" }

func newTestLifecycle(t *testing.T, prober port.RemoteProber) (*Lifecycle, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if prober == nil {
		prober = &fakeProber{}
	}
	return NewLifecycle(storage.NewLocalStorageFromFs(fs), prober, fixedToken), fs
}

func writeFile(t *testing.T, fs afero.Fs, p string, data []byte) {
	t.Helper()
	if err := afero.WriteFile(fs, p, data, 0o644); err != nil {
		t.Fatalf("write %q: %v", p, err)
	}
}

func exists(t *testing.T, fs afero.Fs, p string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, p)
	if err != nil {
		t.Fatalf("exists %q: %v", p, err)
	}
	return ok
}

func TestPendingFile_PicksUpSessionFile(t *testing.T) {
	l, fs := newTestLifecycle(t, nil)
	writeFile(t, fs, "media/files/tmp/s1/report.pdf", pdfBytes)

	a := model.NewAsset()
	a.TempID = "s1"
	a.TempName = "report.pdf"

	p, err := l.PendingFile(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Path != "media/files/tmp/s1/report.pdf" || p.OriginalName != "report.pdf" {
		t.Fatalf("pending = %+v", p)
	}
	if a.Pending() != p {
		t.Error("expected file to be attached")
	}
}

func TestPendingFile_NoSession(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)

	a := model.NewAsset()
	a.TempID = "missing"
	a.TempName = "report.pdf"

	p, err := l.PendingFile(context.Background(), a)
	if err != nil || p != nil {
		t.Fatalf("PendingFile() = %v, %v; want nil, nil", p, err)
	}
}

func TestPrepareForFinalization_Local(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		data      []byte
		title     string
		wantPath  string
		wantTitle string
	}{
		{"sniffed extension", "report.bin", pdfBytes, "", "tok.pdf", "report.bin"},
		{"fallback to original name", "archive.custom", binBytes, "", "tok.custom", "archive.custom"},
		{"no extension at all", "blob", binBytes, "Kept", "tok", "Kept"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, fs := newTestLifecycle(t, nil)
			writeFile(t, fs, "media/files/tmp/s/"+tc.file, tc.data)

			a := model.NewAsset()
			a.Title = tc.title
			a.TempID = "s"
			a.TempName = tc.file

			if err := l.PrepareForFinalization(context.Background(), a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Path != tc.wantPath {
				t.Errorf("Path = %q; want %q", a.Path, tc.wantPath)
			}
			if a.Title != tc.wantTitle {
				t.Errorf("Title = %q; want %q", a.Title, tc.wantTitle)
			}
			if a.OriginalFileName != tc.file {
				t.Errorf("OriginalFileName = %q; want %q", a.OriginalFileName, tc.file)
			}
		})
	}
}

func TestPrepareForFinalization_Remote(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)

	a := model.NewAsset()
	a.SetStorageLocation(model.StorageRemote)
	a.SetRemotePath("https://cdn.example.com/files/white-paper.pdf?v=2")

	if err := l.PrepareForFinalization(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.OriginalFileName != "white-paper.pdf" {
		t.Errorf("OriginalFileName = %q", a.OriginalFileName)
	}
	if a.Title != "white-paper.pdf" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Path != "" {
		t.Errorf("Path = %q; want empty", a.Path)
	}
}

func TestPrepareForFinalization_NoOp(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)

	a := model.NewAsset()
	a.Title = "t"
	for i := 0; i < 2; i++ {
		if err := l.PrepareForFinalization(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if a.Path != "" || a.OriginalFileName != "" || a.Title != "t" {
		t.Errorf("asset modified: %+v", a)
	}
}

func TestFinalize_LocalWithPendingFile(t *testing.T) {
	l, fs := newTestLifecycle(t, nil)
	writeFile(t, fs, "media/files/tmp/s/new.pdf", pdfBytes)
	writeFile(t, fs, "media/files/tmp/s/other.txt", []byte("leftover"))
	writeFile(t, fs, "media/files/old.pdf", pdfBytes)
	writeFile(t, fs, "media/files/old.pdf.preview.webp", []byte("webp"))

	a := model.NewAsset()
	a.ID = 7
	a.Title = "Report"
	a.Path = "old.pdf"
	a.TempID = "s"
	a.TempName = "new.pdf"
	ctx := context.Background()

	if err := l.PrepareForFinalization(ctx, a); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if a.OldPath() != "old.pdf" {
		t.Fatalf("OldPath = %q; want old.pdf", a.OldPath())
	}
	if err := l.Finalize(ctx, a); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if a.Pending() != nil {
		t.Error("pending file not released")
	}
	if !exists(t, fs, "media/files/tok.pdf") {
		t.Error("permanent file missing")
	}
	if !exists(t, fs, "media/files/old.pdf") {
		t.Error("old file should be kept until RemoveOldFile")
	}
	if exists(t, fs, "media/files/tmp/s") {
		t.Error("temp session directory not removed")
	}

	if err := l.RemoveOldFile(ctx, a); err != nil {
		t.Fatalf("remove old file: %v", err)
	}
	if exists(t, fs, "media/files/old.pdf") || exists(t, fs, "media/files/old.pdf.preview.webp") {
		t.Error("old file or its preview not removed")
	}
	if a.OldPath() != "" {
		t.Errorf("OldPath = %q; want empty", a.OldPath())
	}
	if a.Extension != "pdf" || a.MimeType != "application/pdf" || a.Size != int64(len(pdfBytes)) {
		t.Errorf("derived = %q %q %d", a.Extension, a.MimeType, a.Size)
	}
}

func TestFinalize_LocalNothingPending(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)
	a := model.NewAsset()
	a.Path = "kept.pdf"
	if err := l.Finalize(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Path != "kept.pdf" {
		t.Errorf("Path = %q", a.Path)
	}
}

func TestFinalize_NotPrepared(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)
	a := model.NewAsset()
	a.AttachFile(&model.PendingFile{Path: "media/files/tmp/s/a.pdf"})
	if err := l.Finalize(context.Background(), a); !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}
}

func TestFinalize_MoveFailure(t *testing.T) {
	l, _ := newTestLifecycle(t, nil)
	a := model.NewAsset()
	a.AttachFile(&model.PendingFile{Path: "media/files/tmp/s/gone.pdf"})
	a.SetPath("tok.pdf")

	err := l.Finalize(context.Background(), a)
	if !errors.Is(err, ErrFilesystemOperationFailed) {
		t.Fatalf("expected ErrFilesystemOperationFailed, got %v", err)
	}
	if !errors.Is(err, port.ErrFileNotFound) {
		t.Errorf("expected wrapped ErrFileNotFound, got %v", err)
	}
	if a.Pending() == nil {
		t.Error("pending file should be kept after a failed move")
	}
}

func TestFinalize_Remote(t *testing.T) {
	tests := []struct {
		name     string
		prober   *fakeProber
		wantMime string
		wantSize int64
	}{
		{"headers present", &fakeProber{res: port.ProbeResult{MimeType: "application/pdf", SizeBytes: 2048}}, "application/pdf", 2048},
		{"headers missing", &fakeProber{}, "", 0},
		{"probe fails", &fakeProber{err: errors.New("dial timeout")}, "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLifecycle(t, tc.prober)
			a := model.NewAsset()
			a.SetStorageLocation(model.StorageRemote)
			a.SetRemotePath("http://example.com/doc.pdf")

			if err := l.Finalize(context.Background(), a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Extension != "pdf" {
				t.Errorf("Extension = %q; want pdf", a.Extension)
			}
			if a.MimeType != tc.wantMime || a.Size != tc.wantSize {
				t.Errorf("derived = %q %d; want %q %d", a.MimeType, a.Size, tc.wantMime, tc.wantSize)
			}
			if tc.prober.gotURL != "http://example.com/doc.pdf" {
				t.Errorf("probed %q", tc.prober.gotURL)
			}
		})
	}
}

func TestRemoveOldFile_AfterSwitchToRemote(t *testing.T) {
	l, fs := newTestLifecycle(t, &fakeProber{})
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)

	a := model.NewAsset()
	a.ID = 3
	a.Path = "abc.pdf"
	a.SetStorageLocation(model.StorageRemote)
	a.SetRemotePath("https://example.com/doc.pdf")

	if err := l.Finalize(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.RemoveOldFile(context.Background(), a); err != nil {
		t.Fatalf("remove old file: %v", err)
	}
	if exists(t, fs, "media/files/abc.pdf") {
		t.Error("local file should be removed after switching to remote")
	}
	if a.OldPath() != "" {
		t.Errorf("OldPath = %q; want empty", a.OldPath())
	}
}

func TestRemoveStoredFile(t *testing.T) {
	l, fs := newTestLifecycle(t, nil)
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)
	writeFile(t, fs, "media/files/tmp/s/new.pdf", pdfBytes)
	ctx := context.Background()

	a := model.NewAsset()
	a.Path = "abc.pdf"
	a.TempID = "s"
	a.TempName = "new.pdf"

	if err := l.RemoveStoredFile(ctx, a, true); err != nil {
		t.Fatalf("remove temp: %v", err)
	}
	if exists(t, fs, "media/files/tmp/s/new.pdf") || !exists(t, fs, "media/files/abc.pdf") {
		t.Fatal("only the temp file should be removed")
	}
	if err := l.RemoveStoredFile(ctx, a, false); err != nil {
		t.Fatalf("remove permanent: %v", err)
	}
	if exists(t, fs, "media/files/abc.pdf") {
		t.Error("permanent file not removed")
	}

	// already gone and unresolvable paths are silent
	if err := l.RemoveStoredFile(ctx, a, false); err != nil {
		t.Errorf("missing file: %v", err)
	}
	if err := l.RemoveStoredFile(ctx, model.NewAsset(), true); err != nil {
		t.Errorf("unresolvable path: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	l, fs := newTestLifecycle(t, nil)
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)
	ctx := context.Background()

	a := model.NewAsset()
	if f, err := l.LoadFile(ctx, a, false); f != nil || err != nil {
		t.Fatalf("no path: got %v, %v", f, err)
	}

	a.Path = "abc.pdf"
	f, err := l.LoadFile(ctx, a, false)
	if err != nil || f == nil {
		t.Fatalf("LoadFile() = %v, %v", f, err)
	}
	if f.MimeType != "application/pdf" {
		t.Errorf("MimeType = %q", f.MimeType)
	}

	a.Path = "missing.pdf"
	if f, err := l.LoadFile(ctx, a, false); f != nil || err != nil {
		t.Fatalf("missing file: got %v, %v", f, err)
	}
}

func TestResolveFileType(t *testing.T) {
	l, fs := newTestLifecycle(t, nil)
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)
	writeFile(t, fs, "media/files/raw.dat", binBytes)
	writeFile(t, fs, "media/files/tmp/s/notes.txt", []byte("plain notes"))
	ctx := context.Background()

	remote := model.NewAsset()
	remote.SetStorageLocation(model.StorageRemote)
	remote.SetRemotePath("http://example.com/a/b/Slides.PPTX?dl=1")

	tests := []struct {
		name string
		a    *model.Asset
		want string
	}{
		{"remote url", remote, "PPTX"},
		{"local sniffed", &model.Asset{Path: "abc.pdf"}, "pdf"},
		{"local fallback to path", &model.Asset{Path: "raw.dat"}, "dat"},
		{"temp session", &model.Asset{TempID: "s", TempName: "notes.txt"}, "txt"},
		{"nothing", model.NewAsset(), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.ResolveFileType(ctx, tc.a); got != tc.want {
				t.Errorf("ResolveFileType() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestResolveFileInfoAndMimeType(t *testing.T) {
	prober := &fakeProber{res: port.ProbeResult{MimeType: "image/png", SizeBytes: 99}}
	l, fs := newTestLifecycle(t, prober)
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)
	ctx := context.Background()

	local := &model.Asset{Path: "abc.pdf"}
	info, err := l.ResolveFileInfo(ctx, local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Extension != "pdf" || info.MimeType != "application/pdf" || info.Size != int64(len(pdfBytes)) {
		t.Errorf("local info = %+v", info)
	}
	if got := l.ResolveMimeType(ctx, local); got != "application/pdf" {
		t.Errorf("local mime = %q", got)
	}

	if _, err := l.ResolveFileInfo(ctx, &model.Asset{Path: "nope.pdf"}); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	remote := &model.Asset{StorageLocation: model.StorageRemote, RemotePath: "http://example.com/logo.png"}
	info, err = l.ResolveFileInfo(ctx, remote)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info != (model.DerivedInfo{Extension: "png", MimeType: "image/png", Size: 99}) {
		t.Errorf("remote info = %+v", info)
	}
	if got := l.ResolveMimeType(ctx, remote); got != "image/png" {
		t.Errorf("remote mime = %q", got)
	}
}

func TestSize(t *testing.T) {
	prober := &fakeProber{res: port.ProbeResult{SizeBytes: 3 * 1024 * 1024}}
	l, fs := newTestLifecycle(t, prober)
	writeFile(t, fs, "media/files/abc.pdf", pdfBytes)
	ctx := context.Background()

	t.Run("cached", func(t *testing.T) {
		a := &model.Asset{Path: "abc.pdf", Size: 10}
		if got := l.Size(ctx, a, false); got != 10 {
			t.Errorf("Size() = %d; want 10", got)
		}
	})
	t.Run("forced local", func(t *testing.T) {
		a := &model.Asset{Path: "abc.pdf", Size: 10}
		if got := l.Size(ctx, a, true); got != int64(len(pdfBytes)) {
			t.Errorf("Size() = %d; want %d", got, len(pdfBytes))
		}
		if a.Size != int64(len(pdfBytes)) {
			t.Error("size not cached")
		}
	})
	t.Run("remote", func(t *testing.T) {
		a := &model.Asset{StorageLocation: model.StorageRemote, RemotePath: "http://example.com/a.zip"}
		if got := l.HumanSize(ctx, a, false, ""); got != "3.00 MB" {
			t.Errorf("HumanSize() = %q; want 3.00 MB", got)
		}
		if got := l.HumanSize(ctx, a, false, "KB"); got != "3,072.00 KB" {
			t.Errorf("HumanSize(KB) = %q", got)
		}
		if prober.calls != 1 {
			t.Errorf("prober called %d times; want 1", prober.calls)
		}
	})
	t.Run("unresolvable", func(t *testing.T) {
		if got := l.Size(ctx, model.NewAsset(), true); got != 0 {
			t.Errorf("Size() = %d; want 0", got)
		}
		if got := l.HumanSize(ctx, &model.Asset{Path: "missing.pdf"}, false, ""); got != "0 bytes" {
			t.Errorf("HumanSize() = %q; want 0 bytes", got)
		}
	})
}
