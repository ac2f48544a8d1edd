package billy

import (
	"io"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/vfs/fs/core"
)

// inputFile wraps billy.File as a core.InputFile.
// It keeps a reference to the filesystem so Size can stat the file.
type inputFile struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read implements io.Reader.
func (f *inputFile) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// ReadAt implements io.ReaderAt.
func (f *inputFile) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// Seek implements io.Seeker.
func (f *inputFile) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Close implements io.Closer.
func (f *inputFile) Close() error {
	return f.file.Close()
}

// Size returns the current size of the file.
func (f *inputFile) Size() (int64, error) {
	info, err := f.fs.Stat(f.name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// outputStream wraps billy.File as a core.OutputStream.
type outputStream struct {
	file billy.File
}

// Write implements io.Writer.
func (o *outputStream) Write(p []byte) (int, error) {
	return o.file.Write(p)
}

// Close implements io.Closer.
// Backends without Sync (e.g., memfs) only close.
func (o *outputStream) Close() error {
	if syncer, ok := o.file.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			_ = o.file.Close()
			return err
		}
	}
	return o.file.Close()
}

// Compile-time interface checks.
var (
	_ core.InputFile    = (*inputFile)(nil)
	_ core.OutputStream = (*outputStream)(nil)
	_ io.ReaderAt       = (*inputFile)(nil)
)
