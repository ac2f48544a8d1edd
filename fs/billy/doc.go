// Package billy provides the local and mock filesystems of vfs on top of
// go-billy.
//
// LocalFS wraps go-billy's osfs rooted at "/" and serves the "file" URI
// scheme. MemoryFS wraps go-billy's memfs and serves the "mock" scheme.
// Both implement core.FileSystem and expose the underlying
// billy.Filesystem through Unwrap.
//
// Usage:
//
//	local := billy.NewLocal()
//	info, err := local.GetInfo("/etc/hosts")
//
// # Memory Filesystem
//
// For testing, use the in-memory filesystem. Every entry reports the same
// modification time, the epoch given at construction:
//
//	mem := billy.NewMemory(billy.WithEpoch(time.Unix(0, 0)))
//	err := core.WriteFile(mem, "a/b.txt", []byte("data"))
//
// # Semantics
//
// GetInfo on a missing path reports core.FileTypeNotFound. Listings are
// sorted by name within each directory. Output streams create missing
// parent directories. Errors are *fs.PathError values wrapping the io/fs
// sentinels, or the error returned by go-billy.
package billy
