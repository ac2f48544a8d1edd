package core

import (
	"io"
)

// FSType represents the kind of filesystem behind a FileSystem value.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates the local disk.
	FSTypeLocal
	// FSTypeMemory indicates the in-memory mock filesystem.
	FSTypeMemory
	// FSTypeObjectStore indicates an S3-compatible object store.
	FSTypeObjectStore
	// FSTypeDistributed indicates a distributed filesystem such as HDFS.
	FSTypeDistributed
	// FSTypeSubTree indicates a filesystem confined to a base directory.
	FSTypeSubTree
	// FSTypeSlow indicates a filesystem with injected latency.
	FSTypeSlow
)

// String returns the scheme-like name of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "mock"
	case FSTypeObjectStore:
		return "s3"
	case FSTypeDistributed:
		return "hdfs"
	case FSTypeSubTree:
		return "subtree"
	case FSTypeSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// FileSystem is the polymorphic filesystem contract.
//
// All backends and decorators MUST implement this interface, which is
// composed of four sub-interfaces: InfoFS, DirFS, ManageFS and StreamFS.
// Implementations are expected to be safe for concurrent use to the extent
// their backing store is.
type FileSystem interface {
	InfoFS
	DirFS
	ManageFS
	StreamFS

	// Type returns the kind of filesystem.
	Type() FSType
}

// InfoFS defines metadata queries.
type InfoFS interface {
	// NormalizePath returns the canonical form of p for this filesystem.
	// Backends without a canonical form return p unchanged.
	NormalizePath(p string) (string, error)

	// GetInfo returns the metadata of a single path.
	// A missing path yields a FileInfo with Type FileTypeNotFound and no error.
	GetInfo(p string) (FileInfo, error)

	// GetInfos lists the entries under sel.BaseDir, excluding the base
	// directory itself.
	GetInfos(sel FileSelector) ([]FileInfo, error)

	// GetInfosForPaths returns one FileInfo per path, in input order.
	// It stops at the first failure.
	GetInfosForPaths(paths []string) ([]FileInfo, error)
}

// DirFS defines directory operations.
type DirFS interface {
	// CreateDir creates a directory. When recursive is true missing parents
	// are created too. Creating an existing directory is not an error.
	CreateDir(p string, recursive bool) error

	// DeleteDir deletes a directory and everything below it.
	DeleteDir(p string) error

	// DeleteDirContents deletes everything below a directory, keeping the
	// directory itself. The empty path addresses the root.
	DeleteDirContents(p string) error
}

// ManageFS defines file management operations.
type ManageFS interface {
	// DeleteFile deletes a single file. It fails on directories.
	DeleteFile(p string) error

	// DeleteFiles deletes every path, attempting all of them, and returns
	// the first error encountered.
	DeleteFiles(paths []string) error

	// Move renames src to dest, replacing dest if it is a file.
	Move(src, dest string) error

	// CopyFile copies a single file from src to dest.
	CopyFile(src, dest string) error
}

// StreamFS defines data access.
type StreamFS interface {
	// OpenInputStream opens a file for sequential reading.
	OpenInputStream(p string) (InputStream, error)

	// OpenInputFile opens a file for random-access reading.
	OpenInputFile(p string) (InputFile, error)

	// OpenOutputStream opens a file for writing, creating or truncating it.
	OpenOutputStream(p string) (OutputStream, error)

	// OpenAppendStream opens a file for writing at its end, creating it if
	// it does not exist.
	OpenAppendStream(p string) (OutputStream, error)
}

// InputStream is a sequential reader over file contents.
type InputStream interface {
	io.ReadCloser
}

// InputFile is a random-access reader over file contents.
type InputFile interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer

	// Size returns the total size of the file in bytes.
	Size() (int64, error)
}

// OutputStream is a sequential writer. Data is only guaranteed to be
// visible to readers after Close returns successfully.
type OutputStream interface {
	io.WriteCloser
}
