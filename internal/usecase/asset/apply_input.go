package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/validation"
)

// applyInput copies the editable fields of in onto a. Switching the storage
// mode goes through the model so the other mode's path gets cleared.
func applyInput(a *model.Asset, in port.AssetInput) {
	a.Title = in.Title
	a.Description = in.Description
	a.Alias = in.Alias
	if in.Language != "" {
		a.Language = in.Language
	}
	a.PublishUp = in.PublishUp
	a.PublishDown = in.PublishDown
	a.CategoryID = in.CategoryID

	if in.StorageLocation != "" && in.StorageLocation != a.StorageLocation {
		a.SetStorageLocation(in.StorageLocation)
	}
	if a.IsRemote() {
		if in.RemotePath != a.RemotePath {
			a.SetRemotePath(in.RemotePath)
		}
		return
	}
	if in.TempID != "" {
		a.TempID = in.TempID
		a.TempName = SanitizeFileName(in.TempName)
	}
}

// checkAsset validates a and resolves its category reference.
func checkAsset(ctx context.Context, categories port.CategoryRepository, a *model.Asset) error {
	if errs := validation.ValidateAsset(a); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	if a.CategoryID == nil {
		return nil
	}
	if _, err := categories.GetByID(ctx, *a.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: #%d", ErrCategoryNotFound, *a.CategoryID)
		}
		return err
	}
	return nil
}

// loadAsset maps a missing record to ErrAssetNotFound.
func loadAsset(ctx context.Context, repo port.AssetRepository, id int64) (*model.Asset, error) {
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return a, nil
}
