// Package subtree provides a decorator that confines a filesystem to a base
// directory.
//
// Callers address paths relative to the base directory and never observe
// the base prefix: it is prepended to every request path and stripped from
// every returned FileInfo path.
//
//	fsys, err := subtree.New("tenants/acme", mem)
//	info, err := fsys.GetInfo("report.csv") // reads tenants/acme/report.csv
//	info.Path                               // "report.csv"
package subtree

import (
	"fmt"
	"strings"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// FileSystem is a core.FileSystem rooted at a directory of another
// filesystem. It holds no mutable state and is safe for concurrent use if
// the wrapped filesystem is.
type FileSystem struct {
	basePath string
	base     core.FileSystem
}

// New returns a filesystem confined to basePath within base. The base path
// is normalized by base and stored with exactly one trailing slash.
func New(basePath string, base core.FileSystem) (*FileSystem, error) {
	normalized, err := base.NormalizePath(basePath)
	if err != nil {
		return nil, err
	}

	return &FileSystem{
		basePath: pathutil.EnsureTrailingSlash(pathutil.RemoveTrailingSlash(normalized)),
		base:     base,
	}, nil
}

// BasePath returns the normalized base directory, with its trailing slash.
func (s *FileSystem) BasePath() string {
	return s.basePath
}

// Base returns the wrapped filesystem.
func (s *FileSystem) Base() core.FileSystem {
	return s.base
}

// Type returns FSTypeSubTree.
func (s *FileSystem) Type() core.FSType {
	return core.FSTypeSubTree
}

// String implements fmt.Stringer.
func (s *FileSystem) String() string {
	return fmt.Sprintf("subtree(%s, %s)", s.basePath, s.base.Type())
}

// prepend maps a request path into the wrapped filesystem. The empty path
// maps to the base directory itself.
func (s *FileSystem) prepend(p string) (string, error) {
	if pathutil.HasTraversal(p) {
		return "", errors.Newf(errors.CodeInvalidInput, "path '%s' escapes the subtree", p)
	}
	if p == "" {
		return s.basePath, nil
	}
	return pathutil.Join(s.basePath, p), nil
}

// prependNonEmpty is prepend for operations that need a concrete target.
// Spellings of the root such as "/", "." or "./" count as empty: they would
// otherwise address the base directory itself.
func (s *FileSystem) prependNonEmpty(p string) (string, error) {
	target, err := s.prepend(p)
	if err != nil {
		return "", err
	}
	if n := pathutil.Normalize(p); n == "" || n == pathutil.Separator {
		return "", errors.New(errors.CodeIO, "empty path")
	}
	return target, nil
}

// strip maps a path returned by the wrapped filesystem back to a request
// path.
func (s *FileSystem) strip(p string) (string, error) {
	if !strings.HasPrefix(p, s.basePath) {
		// The base itself is reported without its trailing slash.
		if p == strings.TrimSuffix(s.basePath, "/") {
			return "", nil
		}
		return "", errors.Newf(errors.CodeUnknown,
			"underlying filesystem returned path '%s', which is not a subpath of '%s'", p, s.basePath)
	}
	return p[len(s.basePath):], nil
}

func (s *FileSystem) stripInfo(info core.FileInfo) (core.FileInfo, error) {
	p, err := s.strip(info.Path)
	if err != nil {
		return core.FileInfo{}, err
	}
	return info.WithPath(p), nil
}

// NormalizePath normalizes p through the wrapped filesystem.
func (s *FileSystem) NormalizePath(p string) (string, error) {
	full, err := s.prepend(p)
	if err != nil {
		return "", err
	}
	normalized, err := s.base.NormalizePath(full)
	if err != nil {
		return "", err
	}
	return s.strip(normalized)
}

// GetInfo returns the metadata of p.
func (s *FileSystem) GetInfo(p string) (core.FileInfo, error) {
	full, err := s.prepend(p)
	if err != nil {
		return core.FileInfo{}, err
	}
	info, err := s.base.GetInfo(full)
	if err != nil {
		return core.FileInfo{}, err
	}
	return s.stripInfo(info)
}

// GetInfos lists the entries selected by sel.
func (s *FileSystem) GetInfos(sel core.FileSelector) ([]core.FileInfo, error) {
	full, err := s.prepend(sel.BaseDir)
	if err != nil {
		return nil, err
	}
	sel.BaseDir = full

	infos, err := s.base.GetInfos(sel)
	if err != nil {
		return nil, err
	}

	out := make([]core.FileInfo, 0, len(infos))
	for _, info := range infos {
		stripped, err := s.stripInfo(info)
		if err != nil {
			return nil, err
		}
		out = append(out, stripped)
	}
	return out, nil
}

// GetInfosForPaths returns the metadata of each path, stopping at the first
// failure.
func (s *FileSystem) GetInfosForPaths(paths []string) ([]core.FileInfo, error) {
	return core.GetInfosForPaths(s, paths)
}

// CreateDir creates the directory p.
func (s *FileSystem) CreateDir(p string, recursive bool) error {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return err
	}
	return s.base.CreateDir(full, recursive)
}

// DeleteDir deletes the directory p.
func (s *FileSystem) DeleteDir(p string) error {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return err
	}
	return s.base.DeleteDir(full)
}

// DeleteDirContents empties the directory p. The empty path empties the
// whole subtree.
func (s *FileSystem) DeleteDirContents(p string) error {
	full, err := s.prepend(p)
	if err != nil {
		return err
	}
	return s.base.DeleteDirContents(full)
}

// DeleteFile deletes the file p.
func (s *FileSystem) DeleteFile(p string) error {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return err
	}
	return s.base.DeleteFile(full)
}

// DeleteFiles deletes every path and returns the first error.
func (s *FileSystem) DeleteFiles(paths []string) error {
	return core.DeleteFiles(s, paths)
}

// Move renames src to dest.
func (s *FileSystem) Move(src, dest string) error {
	from, err := s.prependNonEmpty(src)
	if err != nil {
		return err
	}
	to, err := s.prependNonEmpty(dest)
	if err != nil {
		return err
	}
	return s.base.Move(from, to)
}

// CopyFile copies the file src to dest.
func (s *FileSystem) CopyFile(src, dest string) error {
	from, err := s.prependNonEmpty(src)
	if err != nil {
		return err
	}
	to, err := s.prependNonEmpty(dest)
	if err != nil {
		return err
	}
	return s.base.CopyFile(from, to)
}

// OpenInputStream opens the file p for sequential reading.
func (s *FileSystem) OpenInputStream(p string) (core.InputStream, error) {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return nil, err
	}
	return s.base.OpenInputStream(full)
}

// OpenInputFile opens the file p for random-access reading.
func (s *FileSystem) OpenInputFile(p string) (core.InputFile, error) {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return nil, err
	}
	return s.base.OpenInputFile(full)
}

// OpenOutputStream creates or truncates the file p.
func (s *FileSystem) OpenOutputStream(p string) (core.OutputStream, error) {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return nil, err
	}
	return s.base.OpenOutputStream(full)
}

// OpenAppendStream opens the file p for appending.
func (s *FileSystem) OpenAppendStream(p string) (core.OutputStream, error) {
	full, err := s.prependNonEmpty(p)
	if err != nil {
		return nil, err
	}
	return s.base.OpenAppendStream(full)
}

var _ core.FileSystem = (*FileSystem)(nil)
