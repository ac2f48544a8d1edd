package fstest

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
)

// TestStreamFS tests data access: input streams, input files, output and
// append streams.
// Uses POSIXTestConfig() by default.
func TestStreamFS(t *testing.T, filesystem core.FileSystem) {
	TestStreamFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestStreamFSWithConfig tests data access with behavior configuration.
func TestStreamFSWithConfig(t *testing.T, filesystem core.FileSystem, config FSTestConfig) {
	const group = "StreamFS"

	config.run(t, group, "OutputThenInput", func(t *testing.T) {
		mustWrite(t, filesystem, "stream.txt", []byte("hello world"))
		assertContent(t, filesystem, "stream.txt", []byte("hello world"))
	})
	config.run(t, group, "OutputTruncates", func(t *testing.T) {
		mustWrite(t, filesystem, "trunc.txt", []byte("a much longer payload"))
		mustWrite(t, filesystem, "trunc.txt", []byte("short"))
		assertContent(t, filesystem, "trunc.txt", []byte("short"))
	})
	config.run(t, group, "InputFileRandomAccess", func(t *testing.T) {
		mustWrite(t, filesystem, "random.txt", []byte("0123456789"))

		f, err := filesystem.OpenInputFile("random.txt")
		if err != nil {
			t.Fatalf("OpenInputFile(random.txt): got error %v, want nil", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				t.Errorf("Close(): got error %v", closeErr)
			}
		}()

		size, err := f.Size()
		if err != nil || size != 10 {
			t.Errorf("Size(): got (%d, %v), want (10, nil)", size, err)
		}

		buf := make([]byte, 3)
		if n, err := f.ReadAt(buf, 4); err != nil || n != 3 || string(buf) != "456" {
			t.Errorf("ReadAt(4): got (%d, %q, %v), want (3, \"456\", nil)", n, buf, err)
		}

		if pos, err := f.Seek(8, io.SeekStart); err != nil || pos != 8 {
			t.Errorf("Seek(8): got (%d, %v), want (8, nil)", pos, err)
		}
		rest, err := io.ReadAll(f)
		if err != nil || string(rest) != "89" {
			t.Errorf("ReadAll after Seek: got (%q, %v), want (\"89\", nil)", rest, err)
		}
	})
	config.run(t, group, "Append", func(t *testing.T) {
		mustWrite(t, filesystem, "append.txt", []byte("head"))

		out, err := filesystem.OpenAppendStream("append.txt")
		if err != nil {
			t.Fatalf("OpenAppendStream(append.txt): got error %v, want nil", err)
		}
		if _, err := out.Write([]byte("-tail")); err != nil {
			t.Fatalf("Write(): got error %v, want nil", err)
		}
		if err := out.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		assertContent(t, filesystem, "append.txt", []byte("head-tail"))

		created, err := filesystem.OpenAppendStream("append-new.txt")
		if err != nil {
			t.Fatalf("OpenAppendStream(append-new.txt): got error %v, want nil", err)
		}
		if err := created.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		mustType(t, filesystem, "append-new.txt", core.FileTypeFile)
	})
	config.run(t, group, "InputNotExist", func(t *testing.T) {
		_, err := filesystem.OpenInputStream("absent.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("OpenInputStream(absent.txt): got error %v, want fs.ErrNotExist", err)
		}
		_, err = filesystem.OpenInputFile("absent.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("OpenInputFile(absent.txt): got error %v, want fs.ErrNotExist", err)
		}
	})
	config.run(t, group, "InputOnDirectory", func(t *testing.T) {
		if err := filesystem.CreateDir("streamdir", false); err != nil {
			t.Fatalf("CreateDir(streamdir): setup failed: %v", err)
		}
		if _, err := filesystem.OpenInputStream("streamdir"); err == nil {
			t.Errorf("OpenInputStream(streamdir): got nil, want error")
		}
	})
}
