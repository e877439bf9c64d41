package main

import (
	"context"
	"os"

	"github.com/fhuszti/assets-ms-go/internal/config"
	"github.com/fhuszti/assets-ms-go/internal/db"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/migration"
)

func main() {
	ctx := context.Background()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database, err := db.NewFromConfig(db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}.WithMultiStatements())
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	if err := migration.MigrateUp(ctx, database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}
