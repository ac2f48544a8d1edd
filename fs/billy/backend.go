package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/internal/pathutil"
)

// backend implements the core.FileSystem operations shared by LocalFS and
// MemoryFS on top of a billy.Filesystem.
type backend struct {
	bfs       billy.Filesystem
	modTime   func(fs.FileInfo) time.Time
	normalize func(string) (string, error)

	// moveDir overrides directory renames when set.
	moveDir func(src, dest string) error
}

// clean converts an abstract path to the form reported in FileInfo values.
func clean(p string) string {
	return pathutil.Normalize(p)
}

// billyPath converts an abstract path to a billy path. The root maps to "/".
func billyPath(p string) string {
	if p = clean(p); p == "" {
		return "/"
	}
	return p
}

// child joins a reported directory path and an entry name.
func child(dir, name string) string {
	if dir == "" || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func (b *backend) toInfo(p string, info fs.FileInfo) core.FileInfo {
	out := core.FileInfo{
		Path:    p,
		Size:    core.NoSize,
		ModTime: b.modTime(info),
	}
	switch {
	case info.IsDir():
		out.Type = core.FileTypeDirectory
	case info.Mode().IsRegular():
		out.Type = core.FileTypeFile
		out.Size = info.Size()
	default:
		out.Type = core.FileTypeUnknown
	}
	return out
}

// stat returns the billy metadata for p, or nil when p does not exist.
func (b *backend) stat(p string) (fs.FileInfo, error) {
	info, err := b.bfs.Stat(billyPath(p))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return info, err
}

// NormalizePath returns the canonical form of p.
func (b *backend) NormalizePath(p string) (string, error) {
	return b.normalize(p)
}

// GetInfo returns the metadata of p.
func (b *backend) GetInfo(p string) (core.FileInfo, error) {
	info, err := b.stat(p)
	if err != nil {
		return core.FileInfo{}, err
	}
	if info == nil {
		return core.NewFileInfo(clean(p), core.FileTypeNotFound), nil
	}
	return b.toInfo(clean(p), info), nil
}

// GetInfos lists the entries selected by sel in lexical order, depth first.
func (b *backend) GetInfos(sel core.FileSelector) ([]core.FileInfo, error) {
	info, err := b.stat(sel.BaseDir)
	if err != nil {
		return nil, err
	}
	if info == nil {
		if sel.AllowNotFound {
			return []core.FileInfo{}, nil
		}
		return nil, core.PathError("list", sel.BaseDir, core.ErrNotExist)
	}
	if !info.IsDir() {
		return nil, core.PathError("list", sel.BaseDir, core.ErrInvalid)
	}

	out := []core.FileInfo{}
	if err := b.list(clean(sel.BaseDir), sel, 1, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *backend) list(dir string, sel core.FileSelector, depth int, out *[]core.FileInfo) error {
	entries, err := b.bfs.ReadDir(billyPath(dir))
	if err != nil {
		return err
	}
	slices.SortFunc(entries, func(a, b fs.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		p := child(dir, entry.Name())
		*out = append(*out, b.toInfo(p, entry))
		if entry.IsDir() && sel.Descend(depth) {
			if err := b.list(p, sel, depth+1, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetInfosForPaths returns the metadata of each path, stopping at the first
// failure.
func (b *backend) GetInfosForPaths(paths []string) ([]core.FileInfo, error) {
	return core.GetInfosForPaths(b, paths)
}

// CreateDir creates the directory p. Without recursive the parent must
// already exist.
func (b *backend) CreateDir(p string, recursive bool) error {
	info, err := b.stat(p)
	if err != nil {
		return err
	}
	if info != nil {
		if info.IsDir() {
			return nil
		}
		return core.PathError("mkdir", p, core.ErrExist)
	}

	if !recursive {
		parent, err := b.stat(pathutil.Parent(clean(p)))
		if err != nil {
			return err
		}
		if parent == nil {
			return core.PathError("mkdir", p, core.ErrNotExist)
		}
		if !parent.IsDir() {
			return core.PathError("mkdir", p, core.ErrInvalid)
		}
	}
	return b.bfs.MkdirAll(billyPath(p), 0o755)
}

// requireDir fails unless p is an existing directory.
func (b *backend) requireDir(op, p string) error {
	info, err := b.stat(p)
	if err != nil {
		return err
	}
	if info == nil {
		return core.PathError(op, p, core.ErrNotExist)
	}
	if !info.IsDir() {
		return core.PathError(op, p, core.ErrInvalid)
	}
	return nil
}

// requireFile fails unless p is an existing regular file.
func (b *backend) requireFile(op, p string) error {
	info, err := b.stat(p)
	if err != nil {
		return err
	}
	if info == nil {
		return core.PathError(op, p, core.ErrNotExist)
	}
	if info.IsDir() {
		return core.PathError(op, p, core.ErrInvalid)
	}
	return nil
}

// DeleteDir deletes the directory p and its contents. The root cannot be
// deleted.
func (b *backend) DeleteDir(p string) error {
	if billyPath(p) == "/" {
		return core.PathError("rmdir", p, core.ErrInvalid)
	}
	if err := b.requireDir("rmdir", p); err != nil {
		return err
	}
	return b.removeAll(billyPath(p))
}

// DeleteDirContents deletes everything below the directory p.
func (b *backend) DeleteDirContents(p string) error {
	if err := b.requireDir("rmdir", p); err != nil {
		return err
	}

	dir := billyPath(p)
	entries, err := b.bfs.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := b.removeAll(child(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (b *backend) removeAll(p string) error {
	return util.RemoveAll(b.bfs, p)
}

// DeleteFile deletes the file p.
func (b *backend) DeleteFile(p string) error {
	if err := b.requireFile("remove", p); err != nil {
		return err
	}
	return b.bfs.Remove(billyPath(p))
}

// DeleteFiles deletes every path and returns the first error.
func (b *backend) DeleteFiles(paths []string) error {
	return core.DeleteFiles(b, paths)
}

// Move renames src to dest.
func (b *backend) Move(src, dest string) error {
	info, err := b.stat(src)
	if err != nil {
		return err
	}
	if info == nil {
		return core.PathError("move", src, core.ErrNotExist)
	}
	if info.IsDir() && b.moveDir != nil {
		return b.moveDir(billyPath(src), billyPath(dest))
	}
	return b.bfs.Rename(billyPath(src), billyPath(dest))
}

// CopyFile copies the file src to dest.
func (b *backend) CopyFile(src, dest string) error {
	if err := b.requireFile("copy", src); err != nil {
		return err
	}
	return b.copyFile(billyPath(src), billyPath(dest))
}

func (b *backend) copyFile(src, dest string) error {
	in, err := b.bfs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := b.bfs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// OpenInputStream opens the file p for sequential reading.
func (b *backend) OpenInputStream(p string) (core.InputStream, error) {
	return b.OpenInputFile(p)
}

// OpenInputFile opens the file p for random-access reading.
func (b *backend) OpenInputFile(p string) (core.InputFile, error) {
	if err := b.requireFile("open", p); err != nil {
		return nil, err
	}
	f, err := b.bfs.Open(billyPath(p))
	if err != nil {
		return nil, err
	}
	return &inputFile{file: f, fs: b.bfs, name: billyPath(p)}, nil
}

// OpenOutputStream creates or truncates the file p. Missing parent
// directories are created.
func (b *backend) OpenOutputStream(p string) (core.OutputStream, error) {
	return b.openWriter("create", p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// OpenAppendStream opens the file p for appending, creating it if needed.
func (b *backend) OpenAppendStream(p string) (core.OutputStream, error) {
	return b.openWriter("append", p, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (b *backend) openWriter(op, p string, flag int) (core.OutputStream, error) {
	info, err := b.stat(p)
	if err != nil {
		return nil, err
	}
	if info != nil && info.IsDir() {
		return nil, core.PathError(op, p, core.ErrInvalid)
	}

	f, err := b.bfs.OpenFile(billyPath(p), flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &outputStream{file: f}, nil
}
