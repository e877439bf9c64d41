package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/assets-ms-go/internal/mock"
	assetUC "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
)

func TestGetAssetHandler(t *testing.T) {
	const etag = `"0badf00d"`
	tests := []struct {
		name        string
		ctxID       bool
		ifNoneMatch string
		renderErr   error
		wantStatus  int
		wantBody    string
	}{
		{name: "missing id", wantStatus: http.StatusBadRequest},
		{name: "not found", ctxID: true, renderErr: assetUC.ErrAssetNotFound, wantStatus: http.StatusNotFound},
		{name: "render error", ctxID: true, renderErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{name: "not modified", ctxID: true, ifNoneMatch: etag, wantStatus: http.StatusNotModified},
		{name: "happy path", ctxID: true, wantStatus: http.StatusOK, wantBody: `{"id":7}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			renderer := &mock.MockHTTPRenderer{Data: []byte(`{"id":7}`), Etag: etag, Err: tc.renderErr}
			getter := &mock.MockAssetGetter{}
			h := GetAssetHandler(renderer, getter)

			req := httptest.NewRequest(http.MethodGet, "/assets/7", nil)
			if tc.ctxID {
				req = withID(req, 7)
			}
			if tc.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tc.ifNoneMatch)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if tc.ctxID && (renderer.ID != 7 || renderer.Getter != getter) {
				t.Errorf("renderer got id %d getter %v", renderer.ID, renderer.Getter)
			}
			if tc.renderErr == nil && tc.ctxID {
				if rec.Header().Get("ETag") != etag {
					t.Errorf("ETag = %q", rec.Header().Get("ETag"))
				}
				if rec.Header().Get("Cache-Control") != "public, max-age=300" {
					t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
				}
			}
			if tc.renderErr != nil && rec.Header().Get("Cache-Control") != "no-store, max-age=0, must-revalidate" {
				t.Errorf("errors must not be cached, Cache-Control = %q", rec.Header().Get("Cache-Control"))
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Errorf("body = %q; want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
