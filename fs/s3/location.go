package s3

import (
	"strings"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// location is a parsed "bucket/key" path. The zero value is the root.
type location struct {
	bucket string
	key    string
}

// parseLocation splits p into bucket and key. Trailing slashes are ignored;
// leading slashes, empty components and URIs are rejected.
func parseLocation(p string) (location, error) {
	if strings.Contains(p, "://") {
		return location{}, errors.Newf(errors.CodeInvalidInput,
			"Expected an S3 object path of the form 'bucket/key...', got a URI: '%s'", p)
	}

	p = pathutil.RemoveTrailingSlash(p)
	if p == "" {
		return location{}, nil
	}
	if strings.HasPrefix(p, "/") {
		return location{}, errors.Newf(errors.CodeInvalidInput, "Path cannot start with a separator ('%s')", p)
	}
	if strings.Contains(p, "//") {
		return location{}, errors.Newf(errors.CodeInvalidInput, "Empty path component in '%s'", p)
	}

	bucket, key, _ := strings.Cut(p, "/")
	return location{bucket: bucket, key: key}, nil
}

// String returns the abstract path of l.
func (l location) String() string {
	if l.key == "" {
		return l.bucket
	}
	return l.bucket + "/" + l.key
}

func (l location) isRoot() bool {
	return l.bucket == ""
}

func (l location) isBucket() bool {
	return l.bucket != "" && l.key == ""
}

// prefix returns the key prefix of the objects below l.
func (l location) prefix() string {
	if l.key == "" {
		return ""
	}
	return l.key + "/"
}

// child returns the location of name inside l.
func (l location) child(name string) location {
	if l.bucket == "" {
		return location{bucket: name}
	}
	return location{bucket: l.bucket, key: pathutil.JoinKey(l.key, name)}
}

// parent returns the directory containing l. The parent of a bucket is the
// root.
func (l location) parent() location {
	if l.key == "" {
		return location{}
	}
	i := strings.LastIndex(l.key, "/")
	if i < 0 {
		return location{bucket: l.bucket}
	}
	return location{bucket: l.bucket, key: l.key[:i]}
}

// within reports whether l is other or lies below it.
func (l location) within(other location) bool {
	if l.bucket != other.bucket {
		return false
	}
	return l.key == other.key || pathutil.IsAncestor(other.key, l.key)
}
