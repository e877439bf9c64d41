package mariadb

import (
	"context"
	"database/sql"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

const assetColumns = `id, category_id, title, description, alias, lang, publish_up, publish_down,
        storage_location, path, remote_path, original_file_name, extension, mime_type, size,
        download_count, unique_download_count, revision, created_at, updated_at`

type AssetRepository struct {
	db  *sql.DB
	now func() time.Time
}

// compile-time check: *AssetRepository must satisfy port.AssetRepository
var _ port.AssetRepository = (*AssetRepository)(nil)

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	logger.Debugf(ctx, "creating database record for %s asset %q...", asset.Location(), asset.Title)

	const query = `
      INSERT INTO assets
        (category_id, title, description, alias, lang, publish_up, publish_down,
         storage_location, path, remote_path, original_file_name, extension, mime_type, size,
         download_count, unique_download_count, revision, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	now := r.now()
	res, err := r.db.ExecContext(ctx, query,
		asset.CategoryID, asset.Title, asset.Description, asset.Alias, asset.Language,
		asset.PublishUp, asset.PublishDown,
		asset.Location(), asset.Path, asset.RemotePath, asset.OriginalFileName,
		asset.Extension, asset.MimeType, asset.Size,
		asset.DownloadCount, asset.UniqueDownloadCount, asset.Revision,
		now, now,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	asset.ID = id
	asset.CreatedAt = now
	asset.UpdatedAt = now

	return nil
}

// Update writes every editable column. updated_at is set explicitly so that a
// refresh which changes nothing still counts as one.
func (r *AssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	logger.Debugf(ctx, "updating database record for asset #%d, revision %d...", asset.ID, asset.Revision)

	const query = `
      UPDATE assets
      SET
        category_id        = ?,
        title              = ?,
        description        = ?,
        alias              = ?,
        lang               = ?,
        publish_up         = ?,
        publish_down       = ?,
        storage_location   = ?,
        path               = ?,
        remote_path        = ?,
        original_file_name = ?,
        extension          = ?,
        mime_type          = ?,
        size               = ?,
        revision           = ?,
        updated_at         = ?
      WHERE id = ?
    `
	now := r.now()
	_, err := r.db.ExecContext(ctx, query,
		asset.CategoryID,
		asset.Title,
		asset.Description,
		asset.Alias,
		asset.Language,
		asset.PublishUp,
		asset.PublishDown,
		asset.Location(),
		asset.Path,
		asset.RemotePath,
		asset.OriginalFileName,
		asset.Extension,
		asset.MimeType,
		asset.Size,
		asset.Revision,
		now,
		asset.ID, // WHERE clause
	)
	if err != nil {
		return err
	}
	asset.UpdatedAt = now

	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	logger.Debugf(ctx, "fetching asset #%d from the database...", id)

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a model.Asset
	if err := row.Scan(
		&a.ID, &a.CategoryID, &a.Title, &a.Description, &a.Alias, &a.Language,
		&a.PublishUp, &a.PublishDown,
		&a.StorageLocation, &a.Path, &a.RemotePath, &a.OriginalFileName,
		&a.Extension, &a.MimeType, &a.Size,
		&a.DownloadCount, &a.UniqueDownloadCount, &a.Revision,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	logger.Debugf(ctx, "deleting asset #%d from the database...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	return err
}

// IncrementDownloadCounts keeps updated_at untouched, it tracks edits and
// refreshes only.
func (r *AssetRepository) IncrementDownloadCounts(ctx context.Context, id int64, unique bool) error {
	const query = `
      UPDATE assets
      SET
        download_count        = download_count + 1,
        unique_download_count = unique_download_count + ?,
        updated_at            = updated_at
      WHERE id = ?
    `
	inc := 0
	if unique {
		inc = 1
	}
	_, err := r.db.ExecContext(ctx, query, inc, id)
	return err
}

func (r *AssetRepository) ListRemoteUpdatedBefore(ctx context.Context, before time.Time) ([]int64, error) {
	const query = `
      SELECT id
      FROM assets
      WHERE storage_location = ? AND updated_at < ?
      ORDER BY id
    `
	rows, err := r.db.QueryContext(ctx, query, model.StorageRemote, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
