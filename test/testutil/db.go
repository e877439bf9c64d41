package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/migration"
	"github.com/go-sql-driver/mysql"
)

// SetupTestDB creates a fresh, migrated schema on the server named by
// TEST_DB_DSN and drops it when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Fatal("TEST_DB_DSN env-var not set")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse DSN %q: %v", dsn, err)
	}

	dbName := fmt.Sprintf("%s_%d", cfg.DBName, time.Now().UnixNano())
	cfg.DBName = ""
	rootDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Fatalf("open root DB: %v", err)
	}
	if _, err := rootDB.Exec("CREATE DATABASE " + dbName); err != nil {
		_ = rootDB.Close()
		t.Fatalf("create database %q: %v", dbName, err)
	}

	cfg.DBName = dbName
	cfg.MultiStatements = true
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Fatalf("open test DB: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		if _, err := rootDB.Exec("DROP DATABASE " + dbName); err != nil {
			t.Errorf("drop database %q: %v", dbName, err)
		}
		_ = rootDB.Close()
	})

	if err := migration.MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}
	return db
}

// InsertCategory adds a category row and returns its id.
func InsertCategory(t *testing.T, db *sql.DB, title, alias string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO categories (title, alias) VALUES (?, ?)", title, alias)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("category id: %v", err)
	}
	return id
}
