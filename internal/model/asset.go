package model

import (
	"path"
	"time"
)

type StorageLocation string

const (
	StorageLocal  StorageLocation = "local"
	StorageRemote StorageLocation = "remote"
)

const (
	DefaultUploadDir = "media/files"
	DefaultMaxSize   = 6000000
	DefaultLanguage  = "en"
	tempDirName      = "tmp"

	// PreviewSuffix is appended to the stored file path to name its preview.
	PreviewSuffix = ".preview.webp"
)

// PendingFile references a file that was received but not yet moved into
// permanent storage.
type PendingFile struct {
	Path         string
	OriginalName string
}

type Asset struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Alias               string          `json:"alias"`
	Language            string          `json:"language"`
	PublishUp           *time.Time      `json:"publish_up"`
	PublishDown         *time.Time      `json:"publish_down"`
	CategoryID          *int64          `json:"category_id"`
	StorageLocation     StorageLocation `json:"storage_location"`
	Path                string          `json:"path"`
	OriginalFileName    string          `json:"original_file_name"`
	RemotePath          string          `json:"remote_path"`
	Extension           string          `json:"extension"`
	MimeType            string          `json:"mime_type"`
	Size                int64           `json:"size"`
	DownloadCount       int64           `json:"download_count"`
	UniqueDownloadCount int64           `json:"unique_download_count"`
	Revision            int             `json:"revision"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// upload session state, never persisted
	pending   *PendingFile
	oldPath   string
	TempID    string `json:"-"`
	TempName  string `json:"-"`
	UploadDir string `json:"-"`
	MaxSize   int64  `json:"-"`
}

// DerivedInfo is the probed metadata cached on an asset.
type DerivedInfo struct {
	Extension string
	MimeType  string
	Size      int64
}

func NewAsset() *Asset {
	return &Asset{
		StorageLocation: StorageLocal,
		Language:        DefaultLanguage,
		Revision:        1,
	}
}

func (a *Asset) IsNew() bool {
	return a.ID == 0
}

// Clone returns a copy of the asset that will be persisted as a new record.
func (a *Asset) Clone() *Asset {
	c := *a
	c.ID = 0
	return &c
}

func (a *Asset) Location() StorageLocation {
	if a.StorageLocation == "" {
		a.StorageLocation = StorageLocal
	}
	return a.StorageLocation
}

func (a *Asset) IsRemote() bool {
	return a.Location() == StorageRemote
}

// AttachFile records f as the pending file. An already assigned path is kept
// aside until finalisation confirms the new file.
func (a *Asset) AttachFile(f *PendingFile) {
	a.pending = f
	if a.Path != "" {
		a.oldPath = a.Path
		a.Path = ""
	}
}

func (a *Asset) Pending() *PendingFile {
	return a.pending
}

// ReleasePending drops the pending file reference once it has been stored.
func (a *Asset) ReleasePending() {
	a.pending = nil
}

func (a *Asset) OldPath() string {
	return a.oldPath
}

func (a *Asset) ClearOldPath() {
	a.oldPath = ""
}

func (a *Asset) SetPath(p string) {
	a.Path = p
	if p != "" {
		a.RemotePath = ""
	}
}

func (a *Asset) SetRemotePath(u string) {
	a.RemotePath = u
	if u != "" {
		a.Path = ""
	}
}

// SetStorageLocation switches the storage mode and clears the fields of the
// other mode. A local file dropped by a switch to remote is stashed so that
// finalisation can delete it.
func (a *Asset) SetStorageLocation(l StorageLocation) {
	a.StorageLocation = l
	switch l {
	case StorageLocal:
		a.RemotePath = ""
	case StorageRemote:
		if a.Path != "" {
			a.oldPath = a.Path
			a.Path = ""
		}
		a.pending = nil
	}
}

// SetDerived stores probed metadata.
func (a *Asset) SetDerived(info DerivedInfo) {
	a.Extension = info.Extension
	a.MimeType = info.MimeType
	a.Size = info.Size
}

func (a *Asset) UploadDirOrDefault() string {
	if a.UploadDir != "" {
		return a.UploadDir
	}
	return DefaultUploadDir
}

func (a *Asset) MaxSizeOrDefault() int64 {
	if a.MaxSize > 0 {
		return a.MaxSize
	}
	return DefaultMaxSize
}

// AbsolutePath returns the permanent location of a local file, or "".
func (a *Asset) AbsolutePath() string {
	if a.Path == "" {
		return ""
	}
	return path.Join(a.UploadDirOrDefault(), a.Path)
}

// OldAbsolutePath returns the permanent location of the stashed file, or "".
func (a *Asset) OldAbsolutePath() string {
	if a.oldPath == "" {
		return ""
	}
	return path.Join(a.UploadDirOrDefault(), a.oldPath)
}

func (a *Asset) AbsoluteTempDir() string {
	if a.TempID == "" {
		return ""
	}
	return path.Join(a.UploadDirOrDefault(), tempDirName, a.TempID)
}

func (a *Asset) AbsoluteTempPath() string {
	if a.TempID == "" || a.TempName == "" {
		return ""
	}
	return path.Join(a.AbsoluteTempDir(), a.TempName)
}

// FilePath is the remote URL for remote assets and the absolute path otherwise.
func (a *Asset) FilePath() string {
	if a.IsRemote() {
		return a.RemotePath
	}
	return a.AbsolutePath()
}

// IsPublished reports whether now falls in the publish window.
func (a *Asset) IsPublished(now time.Time) bool {
	if a.PublishUp != nil && now.Before(*a.PublishUp) {
		return false
	}
	if a.PublishDown != nil && !now.Before(*a.PublishDown) {
		return false
	}
	return true
}

// PreviewPath returns the location of the generated image preview.
func (a *Asset) PreviewPath() string {
	if a.Path == "" {
		return ""
	}
	return a.AbsolutePath() + PreviewSuffix
}
