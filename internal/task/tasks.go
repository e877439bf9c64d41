package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeRefreshRemote   = "asset:refresh_remote"
	TypeGeneratePreview = "asset:generate_preview"
)

// AssetPayload identifies the asset a task works on.
type AssetPayload struct {
	AssetID int64 `json:"asset_id"`
}

// NewRefreshRemoteTask creates an Asynq task re-probing a remote asset.
func NewRefreshRemoteTask(assetID int64) (*asynq.Task, error) {
	return newAssetTask(TypeRefreshRemote, assetID, asynq.MaxRetry(3))
}

// NewGeneratePreviewTask creates an Asynq task building the preview of an
// image asset.
func NewGeneratePreviewTask(assetID int64) (*asynq.Task, error) {
	return newAssetTask(TypeGeneratePreview, assetID, asynq.MaxRetry(5))
}

func newAssetTask(typename string, assetID int64, opts ...asynq.Option) (*asynq.Task, error) {
	data, err := json.Marshal(AssetPayload{AssetID: assetID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal %s payload: %w", typename, err)
	}
	return asynq.NewTask(typename, data, opts...), nil
}

// ParseAssetPayload parses the task payload to AssetPayload.
func ParseAssetPayload(t *asynq.Task) (AssetPayload, error) {
	var p AssetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return AssetPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if p.AssetID <= 0 {
		return AssetPayload{}, fmt.Errorf("invalid asset id %d in %s payload", p.AssetID, t.Type())
	}
	return p, nil
}
