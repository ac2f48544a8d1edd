package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
)

// TestManageFS tests file management: DeleteFile, DeleteFiles, Move, CopyFile.
// Uses POSIXTestConfig() by default.
func TestManageFS(t *testing.T, filesystem core.FileSystem) {
	TestManageFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestManageFSWithConfig tests file management with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FileSystem, config FSTestConfig) {
	const group = "ManageFS"

	config.run(t, group, "DeleteFile", func(t *testing.T) {
		mustWrite(t, filesystem, "delete.txt", []byte("x"))
		if err := filesystem.DeleteFile("delete.txt"); err != nil {
			t.Fatalf("DeleteFile(delete.txt): got error %v, want nil", err)
		}
		mustType(t, filesystem, "delete.txt", core.FileTypeNotFound)
	})
	config.run(t, group, "DeleteFileNotExist", func(t *testing.T) {
		err := filesystem.DeleteFile("nothere.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("DeleteFile(nothere.txt): got error %v, want fs.ErrNotExist", err)
		}
	})
	config.run(t, group, "DeleteFileOnDirectory", func(t *testing.T) {
		if err := filesystem.CreateDir("adir", false); err != nil {
			t.Fatalf("CreateDir(adir): setup failed: %v", err)
		}
		if err := filesystem.DeleteFile("adir"); err == nil {
			t.Errorf("DeleteFile(adir): got nil, want error")
		}
		mustType(t, filesystem, "adir", core.FileTypeDirectory)
	})
	config.run(t, group, "DeleteFilesAttemptsAll", func(t *testing.T) {
		mustWrite(t, filesystem, "batch-a.txt", []byte("a"))
		mustWrite(t, filesystem, "batch-b.txt", []byte("b"))

		err := filesystem.DeleteFiles([]string{"batch-a.txt", "batch-missing.txt", "batch-b.txt"})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("DeleteFiles: got error %v, want fs.ErrNotExist", err)
		}
		mustType(t, filesystem, "batch-a.txt", core.FileTypeNotFound)
		mustType(t, filesystem, "batch-b.txt", core.FileTypeNotFound)
	})
	config.run(t, group, "MoveFile", func(t *testing.T) {
		mustWrite(t, filesystem, "move-src.txt", []byte("payload"))
		if err := filesystem.Move("move-src.txt", "move-dst.txt"); err != nil {
			t.Fatalf("Move(move-src.txt, move-dst.txt): got error %v, want nil", err)
		}
		mustType(t, filesystem, "move-src.txt", core.FileTypeNotFound)
		assertContent(t, filesystem, "move-dst.txt", []byte("payload"))
	})
	config.run(t, group, "MoveDirectory", func(t *testing.T) {
		if err := filesystem.CreateDir("mv/sub", true); err != nil {
			t.Fatalf("CreateDir(mv/sub): setup failed: %v", err)
		}
		mustWrite(t, filesystem, "mv/sub/file.txt", []byte("deep"))
		mustWrite(t, filesystem, "mvsibling.txt", []byte("keep"))

		if err := filesystem.Move("mv", "moved"); err != nil {
			t.Fatalf("Move(mv, moved): got error %v, want nil", err)
		}
		mustType(t, filesystem, "mv", core.FileTypeNotFound)
		assertContent(t, filesystem, "moved/sub/file.txt", []byte("deep"))
		assertContent(t, filesystem, "mvsibling.txt", []byte("keep"))
	})
	config.run(t, group, "MoveNotExist", func(t *testing.T) {
		err := filesystem.Move("ghost.txt", "other.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Move(ghost.txt): got error %v, want fs.ErrNotExist", err)
		}
	})
	config.run(t, group, "CopyFile", func(t *testing.T) {
		mustWrite(t, filesystem, "copy-src.txt", []byte("copied"))
		if err := filesystem.CopyFile("copy-src.txt", "copy-dst.txt"); err != nil {
			t.Fatalf("CopyFile(copy-src.txt, copy-dst.txt): got error %v, want nil", err)
		}
		assertContent(t, filesystem, "copy-src.txt", []byte("copied"))
		assertContent(t, filesystem, "copy-dst.txt", []byte("copied"))
	})
}

func assertContent(t *testing.T, filesystem core.FileSystem, p string, want []byte) {
	t.Helper()
	got, err := core.ReadFile(filesystem, p)
	if err != nil {
		t.Errorf("ReadFile(%q): got error %v, want nil", p, err)
		return
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile(%q): got %q, want %q", p, got, want)
	}
}
