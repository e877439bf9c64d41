package testutil

import (
	"context"
	"database/sql"

	workerHandler "github.com/fhuszti/assets-ms-go/internal/handler/worker"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/preview"
	"github.com/fhuszti/assets-ms-go/internal/probe"
	"github.com/fhuszti/assets-ms-go/internal/repository/mariadb"
	assetSvc "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/fhuszti/assets-ms-go/internal/uuid"
	"github.com/hibiken/asynq"
)

// StartWorker starts an asynq worker processing the asset tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(db *sql.DB, fs port.Filesystem, ca port.Cache, settings assetSvc.Settings, redisAddr string) func() {
	repo := mariadb.NewAssetRepository(db)
	lc := assetSvc.NewLifecycle(fs, probe.NewHTTPProber(), uuid.NewToken)
	refreshSvc := assetSvc.NewRemoteRefresher(repo, lc, ca)
	previewSvc := assetSvc.NewPreviewGenerator(repo, fs, preview.NewEncoder(preview.NewWebPCodec()), settings)

	mux := workerHandler.NewServeMux(refreshSvc, previewSvc)

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return srv.Shutdown
}
