package migration

import (
	"strings"
	"testing"
)

func TestEmbeddedVersions(t *testing.T) {
	versions, err := embeddedVersions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) < 2 || versions[0] != 1 || versions[1] != 2 {
		t.Fatalf("versions = %v", versions)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups != downs {
		t.Errorf("%d up migrations but %d down migrations", ups, downs)
	}
}

func TestPreviousVersion(t *testing.T) {
	versions := []uint64{1, 2, 5}

	tests := []struct {
		dirty   int
		want    uint64
		wantErr bool
	}{
		{dirty: 2, want: 1},
		{dirty: 5, want: 2},
		{dirty: 1, wantErr: true},
		{dirty: 3, wantErr: true},
	}
	for _, tc := range tests {
		got, err := previousVersion(versions, tc.dirty)
		if tc.wantErr {
			if err == nil {
				t.Errorf("previousVersion(%d): expected error", tc.dirty)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("previousVersion(%d) = %d, %v; want %d", tc.dirty, got, err, tc.want)
		}
	}
}
