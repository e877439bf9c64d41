package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/fhuszti/assets-ms-go/test/testutil"
)

var (
	minioEndpoint string
	redisAddr     string
)

func TestMain(m *testing.M) {
	code := func() int {
		cleanups, err := setup()
		defer func() {
			for _, c := range cleanups {
				c()
			}
		}()
		if err != nil {
			fmt.Fprintf(os.Stderr, "integration setup failed: %v\n", err)
			return 1
		}
		return m.Run()
	}()

	os.Exit(code)
}

// setup starts the containers that CI did not provide through TEST_* env-vars.
func setup() ([]func(), error) {
	var cleanups []func()

	if os.Getenv("TEST_DB_DSN") == "" {
		c, err := testutil.StartMariaDB()
		if err != nil {
			return cleanups, err
		}
		cleanups = append(cleanups, c.Cleanup)
		if err := os.Setenv("TEST_DB_DSN", c.Addr); err != nil {
			return cleanups, err
		}
	}

	minioEndpoint = os.Getenv("TEST_MINIO_ENDPOINT")
	if minioEndpoint == "" {
		c, err := testutil.StartMinIO()
		if err != nil {
			return cleanups, err
		}
		cleanups = append(cleanups, c.Cleanup)
		minioEndpoint = c.Addr
	}

	redisAddr = os.Getenv("TEST_REDIS_ADDR")
	if redisAddr == "" {
		c, err := testutil.StartRedis()
		if err != nil {
			return cleanups, err
		}
		cleanups = append(cleanups, c.Cleanup)
		redisAddr = c.Addr
	}

	return cleanups, nil
}
