package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/mock"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

func TestRenderGetAsset_Cases(t *testing.T) {
	ctx := context.Background()
	const id int64 = 12

	t.Run("cache hit", func(t *testing.T) {
		c := &mock.Cache{AssetOut: []byte(`{"ok":true}`), EtagAsset: "\"1234\""}
		r := NewHTTPRenderer(c)
		getter := &mock.MockAssetGetter{}

		out, etag, err := r.RenderGetAsset(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != string(c.AssetOut) {
			t.Errorf("raw mismatch: got %s want %s", out, c.AssetOut)
		}
		if etag != c.EtagAsset {
			t.Errorf("etag mismatch: got %s want %s", etag, c.EtagAsset)
		}
		if getter.Called {
			t.Error("getter should not be called on cache hit")
		}
		if c.SetAssetCalled || c.SetEtagAssetCalled {
			t.Error("cache should not be set on hit")
		}
	})

	t.Run("cache miss", func(t *testing.T) {
		c := &mock.Cache{}
		resp := &port.GetAssetOutput{ID: id, Title: "Logo", Revision: 3, ValidUntil: time.Now().Add(time.Hour)}
		getter := &mock.MockAssetGetter{Out: resp}
		r := NewHTTPRenderer(c)

		out, etag, err := r.RenderGetAsset(ctx, getter, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(resp)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		expEtag := fmt.Sprintf("\"r3-%08x\"", crc32.ChecksumIEEE(expected))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if !getter.Called {
			t.Error("getter should be called on cache miss")
		}
		if string(c.AssetOut) != string(expected) || c.EtagAsset != expEtag {
			t.Errorf("cache content mismatch: %s / %s", c.AssetOut, c.EtagAsset)
		}
	})

	t.Run("etag missing", func(t *testing.T) {
		c := &mock.Cache{AssetOut: []byte(`{"stale":true}`)}
		getter := &mock.MockAssetGetter{Out: &port.GetAssetOutput{ID: id, ValidUntil: time.Now().Add(time.Hour)}}
		r := NewHTTPRenderer(c)

		if _, _, err := r.RenderGetAsset(ctx, getter, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !getter.Called {
			t.Error("getter should be called when the etag is missing")
		}
	})

	t.Run("getter error", func(t *testing.T) {
		c := &mock.Cache{}
		g := &mock.MockAssetGetter{Err: errors.New("fail")}
		r := NewHTTPRenderer(c)

		_, _, err := r.RenderGetAsset(ctx, g, id)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if c.SetAssetCalled || c.SetEtagAssetCalled {
			t.Error("cache should not be written on error")
		}
	})

	t.Run("stale output not cached", func(t *testing.T) {
		c := &mock.Cache{}
		g := &mock.MockAssetGetter{Out: &port.GetAssetOutput{ID: id, Revision: 1}}
		r := NewHTTPRenderer(c)

		raw, etag, err := r.RenderGetAsset(ctx, g, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(raw) == 0 || etag == "" {
			t.Errorf("expected rendered output, got %q / %q", raw, etag)
		}
		if c.SetAssetCalled || c.SetEtagAssetCalled {
			t.Error("cache should not be written for stale output")
		}
	})

	t.Run("cache error", func(t *testing.T) {
		c := &mock.Cache{GetAssetErr: errors.New("boom")}
		g := &mock.MockAssetGetter{Out: &port.GetAssetOutput{ValidUntil: time.Now().Add(time.Hour)}}
		r := NewHTTPRenderer(c)

		if _, _, err := r.RenderGetAsset(ctx, g, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g.Called {
			t.Error("getter should be called when cache returns error")
		}
		if !c.SetAssetCalled || !c.SetEtagAssetCalled {
			t.Error("cache should be written when missing due to error")
		}
	})
}
