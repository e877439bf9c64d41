package e2e

import (
	"fmt"
	"os"
	"testing"

	"github.com/fhuszti/assets-ms-go/test/testutil"
)

func TestMain(m *testing.M) {
	if os.Getenv("TEST_DB_DSN") != "" {
		os.Exit(m.Run())
	}

	c, err := testutil.StartMariaDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start MariaDB: %v\n", err)
		os.Exit(1)
	}
	if err := os.Setenv("TEST_DB_DSN", c.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set TEST_DB_DSN: %v\n", err)
		c.Cleanup()
		os.Exit(1)
	}

	exitCode := m.Run()

	c.Cleanup()
	os.Exit(exitCode)
}
