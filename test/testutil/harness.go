package testutil

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/assets-ms-go/internal/handler/api"
	cMiddleware "github.com/fhuszti/assets-ms-go/internal/middleware"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/probe"
	"github.com/fhuszti/assets-ms-go/internal/renderer"
	"github.com/fhuszti/assets-ms-go/internal/repository/mariadb"
	assetSvc "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/fhuszti/assets-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
)

// Deps are the collaborators of a test API server.
type Deps struct {
	DB         *sql.DB
	FS         port.Filesystem
	Cache      port.Cache
	Dispatcher port.TaskDispatcher
	Settings   assetSvc.Settings
}

// StartAPI serves the asset routes the way cmd/api wires them, without auth.
func StartAPI(t *testing.T, d Deps) *httptest.Server {
	t.Helper()

	assetRepo := mariadb.NewAssetRepository(d.DB)
	categoryRepo := mariadb.NewCategoryRepository(d.DB)
	lc := assetSvc.NewLifecycle(d.FS, probe.NewHTTPProber(), uuid.NewToken)

	r := chi.NewRouter()
	r.Use(cMiddleware.WithRequestID())
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Post("/assets/uploads", api.UploadFileHandler(assetSvc.NewFileUploader(d.FS, uuid.NewSessionID, d.Settings), d.Settings.MaxSize))
	r.Post("/assets", api.CreateAssetHandler(assetSvc.NewAssetCreator(assetRepo, categoryRepo, lc, d.Dispatcher, d.Settings)))
	r.Route("/assets/{id}", func(r chi.Router) {
		r.Use(cMiddleware.WithAssetID())
		r.Get("/", api.GetAssetHandler(renderer.NewHTTPRenderer(d.Cache), assetSvc.NewAssetGetter(assetRepo, lc, d.Settings)))
		r.Put("/", api.UpdateAssetHandler(assetSvc.NewAssetUpdater(assetRepo, categoryRepo, lc, d.Dispatcher, d.Cache, d.Settings)))
		r.Delete("/", api.DeleteAssetHandler(assetSvc.NewAssetDeleter(assetRepo, d.Cache, d.FS, lc, d.Settings)))
		r.Get("/download", api.DownloadAssetHandler(assetSvc.NewDownloadTracker(assetRepo, d.Cache, d.FS, d.Settings)))
		r.Get("/preview", api.GetPreviewHandler(assetSvc.NewPreviewGetter(assetRepo, d.FS, d.Settings)))
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}
