package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return port.ErrFileNotFound
	case "NoSuchBucket":
		return port.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return port.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", port.ErrInternal, err)
	}
}

func mapFsErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return port.ErrFileNotFound
	}
	if errors.Is(err, fs.ErrPermission) {
		return port.ErrUnauthorized
	}
	return fmt.Errorf("%w: %v", port.ErrInternal, err)
}
