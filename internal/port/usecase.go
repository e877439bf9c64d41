package port

import (
	"context"
	"io"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

// FileUploader stores an incoming file in a temporary upload session.
type FileUploader interface {
	UploadFile(ctx context.Context, in UploadFileInput) (UploadFileOutput, error)
}
type UploadFileInput struct {
	OriginalName string
	Reader       io.Reader
	SizeBytes    int64
}
type UploadFileOutput struct {
	TempID       string `json:"temp_id"`
	TempName     string `json:"temp_name"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
}

// AssetInput carries the editable fields of an asset.
type AssetInput struct {
	Title           string
	Description     string
	Alias           string
	Language        string
	PublishUp       *time.Time
	PublishDown     *time.Time
	CategoryID      *int64
	StorageLocation model.StorageLocation
	RemotePath      string
	TempID          string
	TempName        string
}

// AssetCreator creates an asset from an upload session or a remote URL.
type AssetCreator interface {
	CreateAsset(ctx context.Context, in AssetInput) (*model.Asset, error)
}

// AssetUpdater edits an asset, replacing its file when a new one was uploaded.
type AssetUpdater interface {
	UpdateAsset(ctx context.Context, id int64, in AssetInput) (*model.Asset, error)
}

// AssetGetter retrieves asset details.
type AssetGetter interface {
	GetAsset(ctx context.Context, id int64) (*GetAssetOutput, error)
}
type GetAssetOutput struct {
	ValidUntil          time.Time             `json:"valid_until"`
	ID                  int64                 `json:"id"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Alias               string                `json:"alias"`
	Language            string                `json:"language"`
	PublishUp           *time.Time            `json:"publish_up"`
	PublishDown         *time.Time            `json:"publish_down"`
	Published           bool                  `json:"published"`
	CategoryID          *int64                `json:"category_id"`
	StorageLocation     model.StorageLocation `json:"storage_location"`
	OriginalFileName    string                `json:"original_file_name"`
	RemotePath          string                `json:"remote_path,omitempty"`
	Extension           string                `json:"extension"`
	MimeType            string                `json:"mime_type"`
	SizeBytes           int64                 `json:"size_bytes"`
	Size                string                `json:"size"`
	Icon                string                `json:"icon"`
	IsImage             bool                  `json:"is_image"`
	DownloadURL         string                `json:"download_url"`
	DownloadCount       int64                 `json:"download_count"`
	UniqueDownloadCount int64                 `json:"unique_download_count"`
	Revision            int                   `json:"revision"`
}

// AssetDeleter deletes an asset and its stored file.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, id int64) error
}

// DownloadTracker serves asset payloads and counts downloads.
type DownloadTracker interface {
	DownloadAsset(ctx context.Context, in DownloadAssetInput) (*DownloadAssetOutput, error)
}
type DownloadAssetInput struct {
	ID      int64
	Visitor string
}

// DownloadAssetOutput holds either a Reader for local assets or a RedirectURL
// for remote ones.
type DownloadAssetOutput struct {
	Reader      io.ReadCloser
	RedirectURL string
	FileName    string
	MimeType    string
	SizeBytes   int64
}

// PreviewGetter opens the generated preview of an image asset.
type PreviewGetter interface {
	GetPreview(ctx context.Context, id int64) (io.ReadCloser, error)
}

// RemoteRefresher re-probes the metadata of a remote asset.
type RemoteRefresher interface {
	RefreshRemote(ctx context.Context, id int64) error
}

// PreviewGenerator builds the preview of an image asset.
type PreviewGenerator interface {
	GeneratePreview(ctx context.Context, id int64) error
}

// BacklogRefresher triggers metadata refreshes for stale remote assets.
type BacklogRefresher interface {
	RefreshBacklog(ctx context.Context) error
}
