package core

import (
	"io"
)

// GetInfosForPaths calls fsys.GetInfo for each path in order and returns
// the results. The first failure aborts the loop and is returned alone.
func GetInfosForPaths(fsys InfoFS, paths []string) ([]FileInfo, error) {
	infos := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		info, err := fsys.GetInfo(p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// DeleteFiles calls fsys.DeleteFile for every path. All deletions are
// attempted; only the first error is returned.
func DeleteFiles(fsys ManageFS, paths []string) error {
	var first error
	for _, p := range paths {
		if err := fsys.DeleteFile(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NormalizePath is the identity normalization.
func NormalizePath(p string) (string, error) {
	return p, nil
}

// ReadFile reads the whole file at p.
func ReadFile(fsys StreamFS, p string) ([]byte, error) {
	in, err := fsys.OpenInputStream(p)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return io.ReadAll(in)
}

// WriteFile creates or truncates the file at p and writes data to it.
func WriteFile(fsys StreamFS, p string, data []byte) error {
	out, err := fsys.OpenOutputStream(p)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Exists reports whether anything exists at p.
func Exists(fsys InfoFS, p string) (bool, error) {
	info, err := fsys.GetInfo(p)
	if err != nil {
		return false, err
	}
	return info.Type != FileTypeNotFound, nil
}
