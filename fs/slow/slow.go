// Package slow provides a decorator that injects latency in front of every
// I/O operation of a filesystem, for testing callers under realistic
// storage delays.
//
// Every metadata, directory and file management operation sleeps once
// before delegating. Input streams and input files are wrapped so each
// Read, ReadAt and Seek sleeps as well. Output and append streams sleep
// only when opened. Results and errors are returned unchanged.
package slow

import (
	"fmt"
	"time"

	"github.com/jmgilman/vfs/fs/core"
)

// FileSystem is a core.FileSystem that sleeps before delegating to the
// wrapped filesystem.
type FileSystem struct {
	base      core.FileSystem
	latencies LatencyGenerator
}

// New wraps base using gen for every delay.
func New(base core.FileSystem, gen LatencyGenerator) *FileSystem {
	return &FileSystem{base: base, latencies: gen}
}

// NewWithAverage wraps base with normally distributed delays around
// average, using a random seed.
func NewWithAverage(base core.FileSystem, average time.Duration) *FileSystem {
	return New(base, NewRandomLatencyGenerator(average))
}

// NewWithSeed wraps base with normally distributed delays around average.
// The same seed reproduces the same delays.
func NewWithSeed(base core.FileSystem, average time.Duration, seed uint64) *FileSystem {
	return New(base, NewLatencyGenerator(average, seed))
}

// Base returns the wrapped filesystem.
func (s *FileSystem) Base() core.FileSystem {
	return s.base
}

// Type returns FSTypeSlow.
func (s *FileSystem) Type() core.FSType {
	return core.FSTypeSlow
}

// String implements fmt.Stringer.
func (s *FileSystem) String() string {
	return fmt.Sprintf("slow(%s)", s.base.Type())
}

// NormalizePath delegates without sleeping; normalization does no I/O.
func (s *FileSystem) NormalizePath(p string) (string, error) {
	return s.base.NormalizePath(p)
}

// GetInfo sleeps, then returns the metadata of p.
func (s *FileSystem) GetInfo(p string) (core.FileInfo, error) {
	s.latencies.Sleep()
	return s.base.GetInfo(p)
}

// GetInfos sleeps, then lists the entries selected by sel.
func (s *FileSystem) GetInfos(sel core.FileSelector) ([]core.FileInfo, error) {
	s.latencies.Sleep()
	return s.base.GetInfos(sel)
}

// GetInfosForPaths sleeps once per path.
func (s *FileSystem) GetInfosForPaths(paths []string) ([]core.FileInfo, error) {
	return core.GetInfosForPaths(s, paths)
}

// CreateDir sleeps, then creates the directory p.
func (s *FileSystem) CreateDir(p string, recursive bool) error {
	s.latencies.Sleep()
	return s.base.CreateDir(p, recursive)
}

// DeleteDir sleeps, then deletes the directory p and its contents.
func (s *FileSystem) DeleteDir(p string) error {
	s.latencies.Sleep()
	return s.base.DeleteDir(p)
}

// DeleteDirContents sleeps, then empties the directory p.
func (s *FileSystem) DeleteDirContents(p string) error {
	s.latencies.Sleep()
	return s.base.DeleteDirContents(p)
}

// DeleteFile sleeps, then deletes the file p.
func (s *FileSystem) DeleteFile(p string) error {
	s.latencies.Sleep()
	return s.base.DeleteFile(p)
}

// DeleteFiles sleeps once per path.
func (s *FileSystem) DeleteFiles(paths []string) error {
	return core.DeleteFiles(s, paths)
}

// Move sleeps, then renames src to dest.
func (s *FileSystem) Move(src, dest string) error {
	s.latencies.Sleep()
	return s.base.Move(src, dest)
}

// CopyFile sleeps, then copies the file src to dest.
func (s *FileSystem) CopyFile(src, dest string) error {
	s.latencies.Sleep()
	return s.base.CopyFile(src, dest)
}

// OpenInputStream sleeps, then opens p. Every Read on the stream sleeps too.
func (s *FileSystem) OpenInputStream(p string) (core.InputStream, error) {
	s.latencies.Sleep()
	in, err := s.base.OpenInputStream(p)
	if err != nil {
		return nil, err
	}
	return &inputStream{InputStream: in, latencies: s.latencies}, nil
}

// OpenInputFile sleeps, then opens p for random access. Reads and seeks
// on the file sleep too.
func (s *FileSystem) OpenInputFile(p string) (core.InputFile, error) {
	s.latencies.Sleep()
	in, err := s.base.OpenInputFile(p)
	if err != nil {
		return nil, err
	}
	return &inputFile{InputFile: in, latencies: s.latencies}, nil
}

// OpenOutputStream sleeps, then creates or truncates p.
func (s *FileSystem) OpenOutputStream(p string) (core.OutputStream, error) {
	s.latencies.Sleep()
	return s.base.OpenOutputStream(p)
}

// OpenAppendStream sleeps, then opens p for appending.
func (s *FileSystem) OpenAppendStream(p string) (core.OutputStream, error) {
	s.latencies.Sleep()
	return s.base.OpenAppendStream(p)
}

var _ core.FileSystem = (*FileSystem)(nil)
