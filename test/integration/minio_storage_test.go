package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/storage"
	"github.com/fhuszti/assets-ms-go/test/testutil"
)

func newMinioFS(t *testing.T) port.Filesystem {
	t.Helper()
	fs, err := storage.New(context.Background(), storage.Config{
		Driver:         storage.DriverMinio,
		MinioEndpoint:  minioEndpoint,
		MinioAccessKey: testutil.MinioUser,
		MinioSecretKey: testutil.MinioPassword,
		MinioBucket:    fmt.Sprintf("assets-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("minio storage: %v", err)
	}
	return fs
}

func TestMinioStorageIntegration(t *testing.T) {
	fs := newMinioFS(t)
	ctx := context.Background()
	pdf := testutil.MinimalPDF()

	tmp := "media/files/tmp/session/report.pdf"
	if err := fs.Save(ctx, tmp, bytes.NewReader(pdf), int64(len(pdf))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := fs.Load(ctx, tmp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Extension != "pdf" || f.MimeType != "application/pdf" || f.SizeBytes != int64(len(pdf)) || f.OriginalName != "report.pdf" {
		t.Errorf("Load = %+v", f)
	}

	if err := fs.Move(ctx, tmp, "media/files", "abcdef.pdf"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if ok, _ := fs.Exists(ctx, tmp); ok {
		t.Error("source still exists after Move")
	}
	r, err := fs.Open(ctx, "media/files/abcdef.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(r)
	_ = r.Close()
	if !bytes.Equal(data, pdf) {
		t.Error("moved content differs")
	}

	if err := fs.RemoveAll(ctx, "media/files/tmp/session"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if err := fs.Delete(ctx, "media/files/abcdef.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Load(ctx, "media/files/abcdef.pdf"); !errors.Is(err, port.ErrFileNotFound) {
		t.Errorf("Load after delete = %v; want ErrFileNotFound", err)
	}
}
