package billy

import (
	"io/fs"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// LocalFS wraps billy's osfs for local disk access.
// Paths are absolute local paths in forward-slash form, such as "/tmp/x".
type LocalFS struct {
	*backend
}

// MemoryFS wraps billy's memfs as the mock filesystem.
// Every entry reports the filesystem's epoch as its modification time so
// listings are deterministic.
type MemoryFS struct {
	*backend
	epoch time.Time
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	epoch time.Time
}

// WithEpoch sets the modification time reported by a MemoryFS.
// Ignored by NewLocal.
func WithEpoch(t time.Time) Option {
	return func(c *config) {
		c.epoch = t
	}
}

// NewLocal creates a go-billy-backed local filesystem.
// The returned filesystem is rooted at the filesystem root ("/").
func NewLocal(_ ...Option) *LocalFS {
	return &LocalFS{
		backend: &backend{
			bfs:       osfs.New("/"),
			modTime:   func(info fs.FileInfo) time.Time { return info.ModTime() },
			normalize: normalizeLocal,
		},
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty. Its epoch defaults to the creation time.
func NewMemory(opts ...Option) *MemoryFS {
	cfg := &config{epoch: time.Now()}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &MemoryFS{epoch: cfg.epoch}
	m.backend = &backend{
		bfs:       memfs.New(),
		modTime:   func(fs.FileInfo) time.Time { return m.epoch },
		normalize: core.NormalizePath,
		moveDir:   m.copyTree,
	}
	return m
}

// Unwrap returns the underlying billy.Filesystem.
func (b *backend) Unwrap() billy.Filesystem {
	return b.bfs
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// Epoch returns the modification time reported for every entry.
func (mfs *MemoryFS) Epoch() time.Time {
	return mfs.epoch
}

// copyTree moves a directory by copying every entry below it and removing
// the source afterwards. memfs renames by string prefix, which would also
// move siblings sharing the prefix.
func (mfs *MemoryFS) copyTree(src, dest string) error {
	if err := mfs.bfs.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	entries, err := mfs.bfs.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		from := pathutil.JoinKey(src, entry.Name())
		to := pathutil.JoinKey(dest, entry.Name())
		if entry.IsDir() {
			if err := mfs.copyTree(from, to); err != nil {
				return err
			}
			continue
		}
		if err := mfs.copyFile(from, to); err != nil {
			return err
		}
	}

	return mfs.removeAll(src)
}

// normalizeLocal converts backslashes and resolves dot elements.
func normalizeLocal(p string) (string, error) {
	return pathutil.Normalize(p), nil
}

// Compile-time interface checks.
var (
	_ core.FileSystem = (*LocalFS)(nil)
	_ core.FileSystem = (*MemoryFS)(nil)
)
