package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/cache"
	"github.com/fhuszti/assets-ms-go/internal/config"
	"github.com/fhuszti/assets-ms-go/internal/db"
	"github.com/fhuszti/assets-ms-go/internal/handler/api"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/assets-ms-go/internal/middleware"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/probe"
	"github.com/fhuszti/assets-ms-go/internal/renderer"
	"github.com/fhuszti/assets-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/assets-ms-go/internal/storage"
	"github.com/fhuszti/assets-ms-go/internal/task"
	assetSvc "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/fhuszti/assets-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg)

	fs := initStorage(ctx, cfg)

	assetRepo := mariadb.NewAssetRepository(database.DB)
	categoryRepo := mariadb.NewCategoryRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		redisCache := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warnf(ctx, "⚠️  Redis ping failed, cache calls will degrade: %v", err)
		}
		ca = redisCache
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and background tasks are disabled")
	}

	settings := assetSvc.Settings{
		UploadDir:     cfg.AssetUploadDir,
		MaxSize:       cfg.AssetMaxSize,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	lc := assetSvc.NewLifecycle(fs, probe.NewHTTPProber(), uuid.NewToken)
	writer := cMiddleware.RequireRole(cfg.JWTWriterRole)

	uploaderSvc := assetSvc.NewFileUploader(fs, uuid.NewSessionID, settings)
	r.With(writer).
		Post("/assets/uploads", api.UploadFileHandler(uploaderSvc, cfg.AssetMaxSize))

	creatorSvc := assetSvc.NewAssetCreator(assetRepo, categoryRepo, lc, dispatcher, settings)
	r.With(writer).
		Post("/assets", api.CreateAssetHandler(creatorSvc))

	getterSvc := assetSvc.NewAssetGetter(assetRepo, lc, settings)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithAssetID()).
		Get("/assets/{id}", api.GetAssetHandler(rendererSvc, getterSvc))

	updaterSvc := assetSvc.NewAssetUpdater(assetRepo, categoryRepo, lc, dispatcher, ca, settings)
	r.With(writer, cMiddleware.WithAssetID()).
		Put("/assets/{id}", api.UpdateAssetHandler(updaterSvc))

	deleterSvc := assetSvc.NewAssetDeleter(assetRepo, ca, fs, lc, settings)
	r.With(writer, cMiddleware.WithAssetID()).
		Delete("/assets/{id}", api.DeleteAssetHandler(deleterSvc))

	downloadSvc := assetSvc.NewDownloadTracker(assetRepo, ca, fs, settings)
	r.With(cMiddleware.WithAssetID()).
		Get("/assets/{id}/download", api.DownloadAssetHandler(downloadSvc))

	previewSvc := assetSvc.NewPreviewGetter(assetRepo, fs, settings)
	r.With(cMiddleware.WithAssetID()).
		Get("/assets/{id}/preview", api.GetPreviewHandler(previewSvc))

	listenRouter(ctx, r, cfg, database, ca, dispatcher)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, cfg *config.Settings) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(cMiddleware.WithRequestID())
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(cfg.JWTPublicKey, cfg.JWTAudience))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
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
	logger.Infof(ctx, "✅  Using %s storage", cfg.StorageDriver)

	return fs
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database, clients ...any) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	for _, c := range clients {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warnf(ctx, "Redis client close error: %v", err)
			}
		}
	}
	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
