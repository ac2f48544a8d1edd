package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
)

// TestDirFS tests directory operations: CreateDir, DeleteDir, DeleteDirContents.
// Uses POSIXTestConfig() by default.
func TestDirFS(t *testing.T, filesystem core.FileSystem) {
	TestDirFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestDirFSWithConfig tests directory operations with behavior configuration.
func TestDirFSWithConfig(t *testing.T, filesystem core.FileSystem, config FSTestConfig) {
	const group = "DirFS"

	config.run(t, group, "CreateDirRecursive", func(t *testing.T) {
		if err := filesystem.CreateDir("rec/a/b", true); err != nil {
			t.Fatalf("CreateDir(rec/a/b, recursive): got error %v, want nil", err)
		}
		mustType(t, filesystem, "rec/a/b", core.FileTypeDirectory)
		mustType(t, filesystem, "rec/a", core.FileTypeDirectory)
	})
	config.run(t, group, "CreateDirExisting", func(t *testing.T) {
		if err := filesystem.CreateDir("existing", false); err != nil {
			t.Fatalf("CreateDir(existing): setup failed: %v", err)
		}
		if err := filesystem.CreateDir("existing", false); err != nil {
			t.Errorf("CreateDir(existing) twice: got error %v, want nil", err)
		}
	})
	config.run(t, group, "CreateDirMissingParent", func(t *testing.T) {
		if config.VirtualDirectories {
			t.Skip("Skipping missing parent test - filesystem has virtual directories")
		}
		if err := filesystem.CreateDir("noparent/child", false); err == nil {
			t.Errorf("CreateDir(noparent/child): got nil, want error")
		}
	})
	config.run(t, group, "DeleteDir", func(t *testing.T) {
		if err := filesystem.CreateDir("victim/inner", true); err != nil {
			t.Fatalf("CreateDir(victim/inner): setup failed: %v", err)
		}
		mustWrite(t, filesystem, "victim/inner/file.txt", []byte("x"))
		mustWrite(t, filesystem, "victimsibling.txt", []byte("keep"))

		if err := filesystem.DeleteDir("victim"); err != nil {
			t.Fatalf("DeleteDir(victim): got error %v, want nil", err)
		}
		mustType(t, filesystem, "victim", core.FileTypeNotFound)
		mustType(t, filesystem, "victim/inner/file.txt", core.FileTypeNotFound)
		mustType(t, filesystem, "victimsibling.txt", core.FileTypeFile)
	})
	config.run(t, group, "DeleteDirNotExist", func(t *testing.T) {
		err := filesystem.DeleteDir("nodir")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("DeleteDir(nodir): got error %v, want fs.ErrNotExist", err)
		}
	})
	config.run(t, group, "DeleteDirContents", func(t *testing.T) {
		if err := filesystem.CreateDir("box/sub", true); err != nil {
			t.Fatalf("CreateDir(box/sub): setup failed: %v", err)
		}
		mustWrite(t, filesystem, "box/a.txt", []byte("a"))
		mustWrite(t, filesystem, "box/sub/b.txt", []byte("b"))

		if err := filesystem.DeleteDirContents("box"); err != nil {
			t.Fatalf("DeleteDirContents(box): got error %v, want nil", err)
		}
		mustType(t, filesystem, "box", core.FileTypeDirectory)

		infos, err := filesystem.GetInfos(core.FileSelector{BaseDir: "box", Recursive: true})
		if err != nil {
			t.Fatalf("GetInfos(box): got error %v, want nil", err)
		}
		if len(infos) != 0 {
			t.Errorf("GetInfos(box) after DeleteDirContents: got %v, want empty", paths(infos))
		}
	})
}
