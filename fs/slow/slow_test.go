package slow_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/fs/billy"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/fstest"
	"github.com/jmgilman/vfs/fs/slow"
)

func TestSlow_Conformance(t *testing.T) {
	fstest.TestSuite(t, func() core.FileSystem {
		return slow.New(billy.NewMemory(), slow.FixedLatency(0))
	})
}

func TestSlow_OneDelayPerOperation(t *testing.T) {
	mem := billy.NewMemory()
	require.NoError(t, core.WriteFile(mem, "dir/a.txt", []byte("a")))
	require.NoError(t, core.WriteFile(mem, "dir/b.txt", []byte("b")))

	tests := []struct {
		name  string
		op    func(fsys core.FileSystem) error
		draws int64
	}{
		{"GetInfo", func(f core.FileSystem) error { _, err := f.GetInfo("dir/a.txt"); return err }, 1},
		{"GetInfos", func(f core.FileSystem) error {
			_, err := f.GetInfos(core.FileSelector{BaseDir: "dir", Recursive: true})
			return err
		}, 1},
		{"GetInfosForPaths", func(f core.FileSystem) error {
			_, err := f.GetInfosForPaths([]string{"dir", "dir/a.txt", "dir/b.txt"})
			return err
		}, 3},
		{"CreateDir", func(f core.FileSystem) error { return f.CreateDir("new/dir", true) }, 1},
		{"CopyFile", func(f core.FileSystem) error { return f.CopyFile("dir/a.txt", "dir/c.txt") }, 1},
		{"Move", func(f core.FileSystem) error { return f.Move("dir/c.txt", "dir/d.txt") }, 1},
		{"DeleteFile", func(f core.FileSystem) error { return f.DeleteFile("dir/d.txt") }, 1},
		{"DeleteFiles", func(f core.FileSystem) error { return f.DeleteFiles([]string{"x", "y"}) }, 2},
		{"DeleteDirContents", func(f core.FileSystem) error { return f.DeleteDirContents("new") }, 1},
		{"DeleteDir", func(f core.FileSystem) error { return f.DeleteDir("new") }, 1},
		{"NormalizePath", func(f core.FileSystem) error { _, err := f.NormalizePath("a/b"); return err }, 0},
		{"OpenOutputStreamAndWrite", func(f core.FileSystem) error {
			out, err := f.OpenOutputStream("out.txt")
			if err != nil {
				return err
			}
			if _, err := out.Write([]byte("abc")); err != nil {
				return err
			}
			return out.Close()
		}, 1},
		{"OpenAppendStream", func(f core.FileSystem) error {
			out, err := f.OpenAppendStream("out.txt")
			if err != nil {
				return err
			}
			return out.Close()
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := slow.NewCountingLatency(slow.FixedLatency(0))
			fsys := slow.New(mem, gen)

			err := tt.op(fsys)
			if tt.name != "DeleteFiles" {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.draws, gen.Count())
		})
	}
}

func TestSlow_InputStreamsSleepPerRead(t *testing.T) {
	mem := billy.NewMemory()
	require.NoError(t, core.WriteFile(mem, "data.bin", []byte("0123456789")))

	t.Run("InputStream", func(t *testing.T) {
		gen := slow.NewCountingLatency(slow.FixedLatency(0))
		in, err := slow.New(mem, gen).OpenInputStream("data.bin")
		require.NoError(t, err)
		defer in.Close()

		buf := make([]byte, 4)
		_, err = in.Read(buf)
		require.NoError(t, err)
		_, err = in.Read(buf)
		require.NoError(t, err)

		// open + two reads
		assert.Equal(t, int64(3), gen.Count())
	})

	t.Run("InputFile", func(t *testing.T) {
		gen := slow.NewCountingLatency(slow.FixedLatency(0))
		f, err := slow.New(mem, gen).OpenInputFile("data.bin")
		require.NoError(t, err)
		defer f.Close()

		buf := make([]byte, 2)
		_, err = f.ReadAt(buf, 3)
		require.NoError(t, err)
		assert.Equal(t, "34", string(buf))

		_, err = f.Seek(8, io.SeekStart)
		require.NoError(t, err)
		_, err = f.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "89", string(buf))

		size, err := f.Size()
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)

		// open + ReadAt + Seek + Read; Size does not sleep
		assert.Equal(t, int64(4), gen.Count())
	})
}

func TestSlow_ResultsUnchanged(t *testing.T) {
	mem := billy.NewMemory()
	require.NoError(t, core.WriteFile(mem, "a/b.txt", []byte("payload")))
	fsys := slow.NewWithSeed(mem, time.Microsecond, 1)

	want, err := mem.GetInfos(core.FileSelector{Recursive: true})
	require.NoError(t, err)
	got, err := fsys.GetInfos(core.FileSelector{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, wantErr := mem.OpenInputStream("missing")
	_, gotErr := fsys.OpenInputStream("missing")
	assert.Equal(t, wantErr, gotErr)
	assert.True(t, errors.Is(gotErr, fs.ErrNotExist))
}

func TestSlow_ElapsedAtLeastDelay(t *testing.T) {
	const delay = 5 * time.Millisecond
	fsys := slow.New(billy.NewMemory(), slow.FixedLatency(delay))

	start := time.Now()
	_, err := fsys.GetInfo("anything")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestSlow_Type(t *testing.T) {
	fsys := slow.NewWithAverage(billy.NewMemory(), time.Millisecond)
	assert.Equal(t, core.FSTypeSlow, fsys.Type())
	assert.Equal(t, core.FSTypeMemory, fsys.Base().Type())
	assert.Equal(t, "slow(mock)", fsys.String())
}
