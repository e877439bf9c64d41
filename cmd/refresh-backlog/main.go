package main

import (
	"context"
	"os"

	"github.com/fhuszti/assets-ms-go/internal/config"
	"github.com/fhuszti/assets-ms-go/internal/db"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/assets-ms-go/internal/task"
	assetSvc "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
)

// refresh-backlog schedules a metadata refresh for every remote asset that was
// not refreshed during the last day. Run it from cron.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	if err := run(ctx, cfg); err != nil {
		logger.Errorf(ctx, "❌  Backlog refresh failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Backlog refresh completed")
}

func run(ctx context.Context, cfg *config.Settings) error {
	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(ctx, cfg)
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.Warnf(ctx, "Task client close error: %v", err)
		}
	}()
	repo := mariadb.NewAssetRepository(database.DB)

	return assetSvc.NewBacklogRefresher(repo, dispatcher).RefreshBacklog(ctx)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initDispatcher(ctx context.Context, cfg *config.Settings) *task.Dispatcher {
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "❌  Redis not configured: this command requires a running Redis instance")
		os.Exit(1)
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
