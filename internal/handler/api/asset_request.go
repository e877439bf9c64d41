package api

import (
	"time"

	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

// AssetRequest is the body of the create and update endpoints. A local asset
// references the upload session returned by the upload endpoint.
type AssetRequest struct {
	Title           string     `json:"title" validate:"omitempty,max=191"`
	Description     string     `json:"description" validate:"omitempty,max=65535"`
	Alias           string     `json:"alias" validate:"omitempty,max=191,alias"`
	Language        string     `json:"language" validate:"omitempty,max=10"`
	PublishUp       *time.Time `json:"publish_up"`
	PublishDown     *time.Time `json:"publish_down"`
	CategoryID      *int64     `json:"category_id" validate:"omitempty,gt=0"`
	StorageLocation string     `json:"storage_location" validate:"omitempty,storage_location"`
	RemotePath      string     `json:"remote_path" validate:"omitempty,max=2048,http_url"`
	TempID          string     `json:"temp_id" validate:"omitempty,uuid"`
	TempName        string     `json:"temp_name" validate:"required_with=TempID,omitempty,max=255"`
}

func (r AssetRequest) toInput() port.AssetInput {
	return port.AssetInput{
		Title:           r.Title,
		Description:     r.Description,
		Alias:           r.Alias,
		Language:        r.Language,
		PublishUp:       r.PublishUp,
		PublishDown:     r.PublishDown,
		CategoryID:      r.CategoryID,
		StorageLocation: model.StorageLocation(r.StorageLocation),
		RemotePath:      r.RemotePath,
		TempID:          r.TempID,
		TempName:        r.TempName,
	}
}
