package validation

import (
	"encoding/json"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

const (
	CodeMissingFile       = "missing_file"
	CodeMissingTitle      = "missing_title"
	CodeMissingRemotePath = "missing_remote_path"
	CodeInvalid           = "invalid"
	CodeBeforePublishUp   = "before_publish_up"
)

// FieldError is a user facing error attached to one field of an asset.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// ValidateAsset checks the cross-field rules that depend on the storage mode.
// A local asset needs an attached upload or an already stored file. It does
// not modify a.
func ValidateAsset(a *model.Asset) []FieldError {
	var errs []FieldError

	switch a.StorageLocation {
	case model.StorageLocal, "":
		// a named upload must still exist in its session
		if a.Pending() == nil && (a.Path == "" || a.TempName != "") {
			errs = append(errs, FieldError{Field: "tempName", Code: CodeMissingFile})
		}
		if a.Title == "" {
			errs = append(errs, FieldError{Field: "title", Code: CodeMissingTitle})
		}
	case model.StorageRemote:
		if a.RemotePath == "" {
			errs = append(errs, FieldError{Field: "remotePath", Code: CodeMissingRemotePath})
		}
	default:
		errs = append(errs, FieldError{Field: "storageLocation", Code: CodeInvalid})
	}

	if a.PublishUp != nil && a.PublishDown != nil && a.PublishDown.Before(*a.PublishUp) {
		errs = append(errs, FieldError{Field: "publishDown", Code: CodeBeforePublishUp})
	}

	return errs
}

// FieldErrorsToJson renders errs the same way ErrorsToJson renders struct
// validation errors: a field to code map.
func FieldErrorsToJson(errs []FieldError) (string, error) {
	errsMap := make(map[string]string, len(errs))
	for _, fe := range errs {
		errsMap[fe.Field] = fe.Code
	}
	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
