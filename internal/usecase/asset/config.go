package asset

import (
	"time"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

const (
	PreviewMaxWidth = 320
	BacklogCutoff   = 24 * time.Hour
	DetailsTTL      = time.Hour
)

// Settings carries the deployment values shared by the asset use cases.
type Settings struct {
	UploadDir     string
	MaxSize       int64
	PublicBaseURL string
}

// apply copies the upload overrides onto a.
func (s Settings) apply(a *model.Asset) {
	a.UploadDir = s.UploadDir
	a.MaxSize = s.MaxSize
}
