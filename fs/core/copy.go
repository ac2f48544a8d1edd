package core

import (
	"io"
	"io/fs"
)

// CopyFromFS seeds dst with the tree below srcRoot in src, typically an
// embed.FS or fstest.MapFS. Paths in dst are relative to srcRoot; "." or ""
// copies everything. Empty directories are created as well.
//
//	//go:embed testdata
//	var seed embed.FS
//
//	mem := billy.NewMemory()
//	err := core.CopyFromFS(seed, mem, "testdata")
func CopyFromFS(src fs.FS, dst FileSystem, srcRoot string) error {
	if srcRoot == "" {
		srcRoot = "."
	}
	sub, err := fs.Sub(src, srcRoot)
	if err != nil {
		return err
	}

	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case p == ".":
			return nil
		case d.IsDir():
			return dst.CreateDir(p, true)
		}
		return copyEntry(sub, dst, p)
	})
}

// copyEntry streams one file from src into dst. Parents already exist
// because WalkDir visits directories first.
func copyEntry(src fs.FS, dst FileSystem, p string) error {
	in, err := src.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := dst.OpenOutputStream(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return PathError("copy", p, err)
	}
	return out.Close()
}
