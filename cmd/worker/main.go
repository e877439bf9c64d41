package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/cache"
	"github.com/fhuszti/assets-ms-go/internal/config"
	"github.com/fhuszti/assets-ms-go/internal/db"
	workerHandler "github.com/fhuszti/assets-ms-go/internal/handler/worker"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/preview"
	"github.com/fhuszti/assets-ms-go/internal/probe"
	"github.com/fhuszti/assets-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/assets-ms-go/internal/storage"
	assetSvc "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/fhuszti/assets-ms-go/internal/uuid"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	database := initDb(cfg)

	fs := initStorage(ctx, cfg)

	repo := mariadb.NewAssetRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	defer func() {
		if err := ca.Close(); err != nil {
			logger.Warnf(ctx, "Redis close error: %v", err)
		}
	}()

	settings := assetSvc.Settings{
		UploadDir:     cfg.AssetUploadDir,
		MaxSize:       cfg.AssetMaxSize,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	lc := assetSvc.NewLifecycle(fs, probe.NewHTTPProber(), uuid.NewToken)
	refreshSvc := assetSvc.NewRemoteRefresher(repo, lc, ca)
	previewSvc := assetSvc.NewPreviewGenerator(repo, fs, preview.NewEncoder(preview.NewWebPCodec()), settings)

	mux := workerHandler.NewServeMux(refreshSvc, previewSvc)

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Filesystem {
	fs, err := storage.New(ctx, storage.Config{
		Driver:         cfg.StorageDriver,
		Root:           cfg.StorageRoot,
		MinioEndpoint:  cfg.MinioEndpoint,
		MinioAccessKey: cfg.MinioAccessKey,
		MinioSecretKey: cfg.MinioSecretKey,
		MinioUseSSL:    cfg.MinioUseSSL,
		MinioBucket:    cfg.MinioBucket,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise %s storage: %v", cfg.StorageDriver, err)
		os.Exit(1)
	}
	return fs
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Shutdown waits for in-flight tasks up to the server's shutdown timeout.
	done := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Warn(ctx, "⚠️  Timed out waiting for in-flight tasks")
	}

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
