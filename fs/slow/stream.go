package slow

import (
	"github.com/jmgilman/vfs/fs/core"
)

// inputStream sleeps before every Read.
type inputStream struct {
	core.InputStream
	latencies LatencyGenerator
}

func (s *inputStream) Read(p []byte) (int, error) {
	s.latencies.Sleep()
	return s.InputStream.Read(p)
}

// inputFile sleeps before every Read, ReadAt and Seek.
type inputFile struct {
	core.InputFile
	latencies LatencyGenerator
}

func (f *inputFile) Read(p []byte) (int, error) {
	f.latencies.Sleep()
	return f.InputFile.Read(p)
}

func (f *inputFile) ReadAt(p []byte, off int64) (int, error) {
	f.latencies.Sleep()
	return f.InputFile.ReadAt(p, off)
}

func (f *inputFile) Seek(offset int64, whence int) (int64, error) {
	f.latencies.Sleep()
	return f.InputFile.Seek(offset, whence)
}
