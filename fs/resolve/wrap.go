package resolve

import (
	"time"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/slow"
	"github.com/jmgilman/vfs/fs/subtree"
)

// Wrap decorates fsys for command-line use. A non-empty root confines it to
// that directory; a positive latency delays every operation around that
// average. A zero seed draws delays from a random seed.
func Wrap(fsys core.FileSystem, root string, latency time.Duration, seed uint64) (core.FileSystem, error) {
	if root != "" {
		sub, err := subtree.New(root, fsys)
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	if latency > 0 {
		if seed == 0 {
			return slow.NewWithAverage(fsys, latency), nil
		}
		return slow.NewWithSeed(fsys, latency, seed), nil
	}
	return fsys, nil
}
