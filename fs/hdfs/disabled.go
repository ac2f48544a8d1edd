//go:build !hdfs

package hdfs

import (
	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

// Enabled reports whether HDFS support is compiled in.
const Enabled = false

// New reports that HDFS support was not compiled in. Build with the "hdfs"
// tag to enable it.
func New(Options) (core.FileSystem, error) {
	return nil, errors.New(errors.CodeNotImplemented, "Got HDFS URI but compiled without HDFS support")
}
