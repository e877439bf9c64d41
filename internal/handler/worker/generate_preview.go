package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/preview"
	"github.com/fhuszti/assets-ms-go/internal/task"
	assetUC "github.com/fhuszti/assets-ms-go/internal/usecase/asset"
	"github.com/hibiken/asynq"
)

// GeneratePreviewHandler handles a generate-preview task.
func GeneratePreviewHandler(ctx context.Context, p task.AssetPayload, svc port.PreviewGenerator) error {
	if err := svc.GeneratePreview(ctx, p.AssetID); err != nil {
		if errors.Is(err, assetUC.ErrAssetNotFound) || errors.Is(err, preview.ErrUnsupportedImage) {
			logger.Warnf(ctx, "⚠️  Skipping preview of asset #%d: %v", p.AssetID, err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		logger.Errorf(ctx, "❌  Failed to generate preview for asset #%d: %v", p.AssetID, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully generated preview for asset #%d", p.AssetID)
	return nil
}
