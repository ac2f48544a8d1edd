package core

import (
	"fmt"
	"time"

	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// NoSize marks a FileInfo whose size is unknown.
const NoSize int64 = -1

// FileType classifies the entry a path refers to.
type FileType int

const (
	// FileTypeNotFound indicates nothing exists at the path.
	FileTypeNotFound FileType = iota
	// FileTypeUnknown indicates something exists but its kind is unknown.
	FileTypeUnknown
	// FileTypeFile indicates a regular file.
	FileTypeFile
	// FileTypeDirectory indicates a directory.
	FileTypeDirectory
)

// String returns the lowercase name of the FileType.
func (t FileType) String() string {
	switch t {
	case FileTypeNotFound:
		return "non-existent"
	case FileTypeUnknown:
		return "unknown"
	case FileTypeFile:
		return "file"
	case FileTypeDirectory:
		return "directory"
	default:
		return "invalid"
	}
}

// FileInfo describes one filesystem entry.
//
// Size is NoSize when unknown and only meaningful for files. A zero ModTime
// means the modification time is unknown.
type FileInfo struct {
	Path    string
	Type    FileType
	Size    int64
	ModTime time.Time
}

// NewFileInfo returns a FileInfo for path with the given type and an
// unknown size.
func NewFileInfo(path string, typ FileType) FileInfo {
	return FileInfo{Path: path, Type: typ, Size: NoSize}
}

// BaseName returns the last component of the path.
func (i FileInfo) BaseName() string {
	return pathutil.Base(i.Path)
}

// DirName returns the parent directory of the path.
func (i FileInfo) DirName() string {
	return pathutil.Parent(i.Path)
}

// Extension returns the file extension without the leading dot.
func (i FileInfo) Extension() string {
	return pathutil.Extension(i.Path)
}

// IsFile reports whether the entry is a regular file.
func (i FileInfo) IsFile() bool {
	return i.Type == FileTypeFile
}

// IsDir reports whether the entry is a directory.
func (i FileInfo) IsDir() bool {
	return i.Type == FileTypeDirectory
}

// WithPath returns a copy of i with its path replaced.
func (i FileInfo) WithPath(p string) FileInfo {
	i.Path = p
	return i
}

// String implements fmt.Stringer.
func (i FileInfo) String() string {
	return fmt.Sprintf("FileInfo(%s, %s)", i.Type, i.Path)
}

// FileSelector selects the entries returned by GetInfos.
type FileSelector struct {
	// BaseDir is the directory to list.
	BaseDir string

	// AllowNotFound makes a missing BaseDir return an empty listing
	// instead of an error.
	AllowNotFound bool

	// Recursive lists the whole tree below BaseDir.
	Recursive bool

	// MaxRecursion limits the depth of a recursive listing. Zero means
	// unlimited.
	MaxRecursion int
}

// Descend reports whether a listing at the given depth, where the direct
// children of BaseDir are depth 1, should descend further.
func (s FileSelector) Descend(depth int) bool {
	if !s.Recursive {
		return false
	}
	return s.MaxRecursion <= 0 || depth < s.MaxRecursion
}
