package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/port"
)

type assetGetterSrv struct {
	repo     port.AssetRepository
	lc       *Lifecycle
	settings Settings
	now      func() time.Time
}

// compile-time check: *assetGetterSrv must satisfy port.AssetGetter
var _ port.AssetGetter = (*assetGetterSrv)(nil)

// NewAssetGetter constructs an AssetGetter implementation.
func NewAssetGetter(repo port.AssetRepository, lc *Lifecycle, settings Settings) port.AssetGetter {
	return &assetGetterSrv{repo: repo, lc: lc, settings: settings, now: time.Now}
}

// GetAsset returns the details of an asset. The output is valid for
// DetailsTTL, or until the asset leaves its publish window if that is sooner.
func (s *assetGetterSrv) GetAsset(ctx context.Context, id int64) (*port.GetAssetOutput, error) {
	a, err := loadAsset(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	s.settings.apply(a)

	now := s.now()
	validUntil := now.Add(DetailsTTL)
	if a.PublishUp != nil && a.PublishUp.After(now) && a.PublishUp.Before(validUntil) {
		validUntil = *a.PublishUp
	}
	if a.PublishDown != nil && a.PublishDown.After(now) && a.PublishDown.Before(validUntil) {
		validUntil = *a.PublishDown
	}

	ext := a.Extension
	if ext == "" {
		ext = s.lc.ResolveFileType(ctx, a)
	}

	return &port.GetAssetOutput{
		ValidUntil:          validUntil,
		ID:                  a.ID,
		Title:               a.Title,
		Description:         a.Description,
		Alias:               a.Alias,
		Language:            a.Language,
		PublishUp:           a.PublishUp,
		PublishDown:         a.PublishDown,
		Published:           a.IsPublished(now),
		CategoryID:          a.CategoryID,
		StorageLocation:     a.Location(),
		OriginalFileName:    a.OriginalFileName,
		RemotePath:          a.RemotePath,
		Extension:           ext,
		MimeType:            a.MimeType,
		SizeBytes:           s.lc.Size(ctx, a, false),
		Size:                s.lc.HumanSize(ctx, a, false, ""),
		Icon:                string(IconForExtension(ext)),
		IsImage:             IsImageExtension(ext),
		DownloadURL:         fmt.Sprintf("%s/assets/%d/download", s.settings.PublicBaseURL, a.ID),
		DownloadCount:       a.DownloadCount,
		UniqueDownloadCount: a.UniqueDownloadCount,
		Revision:            a.Revision,
	}, nil
}
