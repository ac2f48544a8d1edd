package s3

import (
	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

// translate converts S3 error responses to io/fs sentinels where one fits.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return core.ErrNotExist
	case "AccessDenied":
		return core.ErrPermission
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return core.ErrExist
	}

	return errors.Wrap(err, errors.CodeIO, "s3 request failed")
}

// isNotFound reports whether err is a missing key or bucket response.
func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// pathError wraps a translated S3 error in a *fs.PathError.
func pathError(op, p string, err error) error {
	if err == nil {
		return nil
	}
	return core.PathError(op, p, translate(err))
}
