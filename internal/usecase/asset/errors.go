package asset

import (
	"errors"
	"strings"

	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/fhuszti/assets-ms-go/internal/validation"
)

var (
	ErrFileNotFound              = port.ErrFileNotFound
	ErrFilesystemOperationFailed = errors.New("asset: filesystem operation failed")
	ErrRemoteProbeDegraded       = errors.New("asset: remote probe degraded")
	ErrValidationFailed          = errors.New("asset: validation failed")
	ErrAssetNotFound             = errors.New("asset: not found")
	ErrCategoryNotFound          = errors.New("asset: category not found")
	ErrNotRemote                 = errors.New("asset: not stored remotely")
	ErrNoPreview                 = errors.New("asset: no preview available")
	ErrFileTooLarge              = errors.New("asset: file too large")
	ErrNotPrepared               = errors.New("asset: storage name not generated")
)

// ValidationError carries the field errors that made an asset invalid.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Code
	}
	return ErrValidationFailed.Error() + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
