package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	MinioUser     = "minioadmin"
	MinioPassword = "minioadmin"
)

// Container is a running throwaway dependency. Addr is a DSN for MariaDB and
// host:port for MinIO and Redis.
type Container struct {
	Addr    string
	Cleanup func()
}

func runContainer(opts *dockertest.RunOptions, port string, ready func(hostPort string) error) (*Container, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", opts.Repository, err)
	}

	hostPort := resource.GetPort(port)
	if err := pool.Retry(func() error { return ready(hostPort) }); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("%s did not become ready: %w", opts.Repository, err)
	}

	return &Container{
		Addr: hostPort,
		Cleanup: func() {
			if err := pool.Purge(resource); err != nil {
				logger.Warnf(context.Background(), "could not purge %s container: %s", opts.Repository, err)
			}
		},
	}, nil
}

// StartMariaDB runs a MariaDB 10.11 container. Addr is a DSN pointing at the
// testdb schema, which SetupTestDB uses as a name prefix.
func StartMariaDB() (*Container, error) {
	c, err := runContainer(&dockertest.RunOptions{
		Repository: "mariadb",
		Tag:        "10.11",
		Env:        []string{"MARIADB_ROOT_PASSWORD=secret"},
	}, "3306/tcp", func(hostPort string) error {
		db, err := sql.Open("mysql", fmt.Sprintf("root:secret@(localhost:%s)/mysql?parseTime=true", hostPort))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	})
	if err != nil {
		return nil, err
	}
	c.Addr = fmt.Sprintf("root:secret@(localhost:%s)/testdb?parseTime=true", c.Addr)
	return c, nil
}

// StartMinIO runs a MinIO server container.
func StartMinIO() (*Container, error) {
	c, err := runContainer(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "latest",
		Env: []string{
			"MINIO_ROOT_USER=" + MinioUser,
			"MINIO_ROOT_PASSWORD=" + MinioPassword,
		},
		Cmd: []string{"server", "/data"},
	}, "9000/tcp", func(hostPort string) error {
		client, err := minio.New("localhost:"+hostPort, &minio.Options{
			Creds: credentials.NewStaticV4(MinioUser, MinioPassword, ""),
		})
		if err != nil {
			return err
		}
		// ListBuckets is a light operation to check health
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err = client.ListBuckets(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.Addr = "localhost:" + c.Addr
	return c, nil
}

// StartRedis runs a Redis 7 container.
func StartRedis() (*Container, error) {
	c, err := runContainer(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	}, "6379/tcp", func(hostPort string) error {
		rdb := redis.NewClient(&redis.Options{Addr: "localhost:" + hostPort})
		defer func() { _ = rdb.Close() }()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}
	c.Addr = "localhost:" + c.Addr
	return c, nil
}
