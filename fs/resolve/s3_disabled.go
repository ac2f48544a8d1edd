//go:build nos3

package resolve

import (
	"net/url"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

const s3Enabled = false

func (r *Resolver) resolveS3(*url.URL) (core.FileSystem, string, error) {
	return nil, "", errors.New(errors.CodeNotImplemented, "Got S3 URI but compiled without S3 support")
}
