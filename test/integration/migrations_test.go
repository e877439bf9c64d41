package integration

import (
	"context"
	"testing"

	"github.com/fhuszti/assets-ms-go/internal/migration"
	"github.com/fhuszti/assets-ms-go/test/testutil"
)

func TestMigrateUpIntegration(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for _, table := range []string{"categories", "assets"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("failed to query migrated table %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("expected 0 rows in %s after migration, got %d", table, n)
		}
	}

	// a second run is a no-op
	if err := migration.MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}
