package storage

import (
	"context"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

const (
	DriverLocal = "local"
	DriverMinio = "minio"
)

// Config selects and configures a Filesystem backend.
type Config struct {
	Driver string
	Root   string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
}

// New builds the Filesystem named by cfg.Driver. The minio backend creates its
// bucket when missing.
func New(ctx context.Context, cfg Config) (port.Filesystem, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		return NewLocalStorage(cfg.Root)
	case DriverMinio:
		client, err := NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return client.WithBucket(ctx, cfg.MinioBucket)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
