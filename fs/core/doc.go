// Package core provides the interfaces and value types shared by every
// filesystem backend and decorator in vfs.
//
// This package defines the contract that backends implement, enabling
// applications to write storage-agnostic code that works against local
// disk, an in-memory mock, object storage, or a distributed filesystem
// through one interface.
//
// # Interface Hierarchy
//
// The FileSystem interface is composed of four sub-interfaces:
//
//   - InfoFS: metadata queries (NormalizePath, GetInfo, GetInfos, GetInfosForPaths)
//   - DirFS: directory operations (CreateDir, DeleteDir, DeleteDirContents)
//   - ManageFS: file management (DeleteFile, DeleteFiles, Move, CopyFile)
//   - StreamFS: data access (OpenInputStream, OpenInputFile, OpenOutputStream, OpenAppendStream)
//
// # Paths
//
// Paths are abstract: forward-slash separated, with no drive letters. The
// empty string names the root of the filesystem. A FileInfo path never ends
// with a slash.
//
// # Missing Paths
//
// GetInfo on a missing path succeeds and reports FileTypeNotFound. Every
// other operation on a missing path fails with an error matching
// ErrNotExist.
//
// # Default Implementations
//
// GetInfosForPaths and DeleteFiles have package-level default
// implementations that backends delegate to:
//
//	func (f *MyFS) DeleteFiles(paths []string) error {
//	    return core.DeleteFiles(f, paths)
//	}
//
// # Usage Example
//
//	import "github.com/jmgilman/vfs/fs/core"
//
//	func Publish(fsys core.FileSystem, data []byte) error {
//	    if err := fsys.CreateDir("out", true); err != nil {
//	        return err
//	    }
//	    return core.WriteFile(fsys, "out/result.json", data)
//	}
package core
