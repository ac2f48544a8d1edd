package fstest

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
)

// TestInfoFS tests metadata queries: GetInfo, GetInfos, GetInfosForPaths.
// Uses POSIXTestConfig() by default.
func TestInfoFS(t *testing.T, filesystem core.FileSystem) {
	TestInfoFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestInfoFSWithConfig tests metadata queries with behavior configuration.
func TestInfoFSWithConfig(t *testing.T, filesystem core.FileSystem, config FSTestConfig) {
	content := []byte("test file content")

	if err := filesystem.CreateDir("info/sub", true); err != nil {
		t.Fatalf("CreateDir(info/sub): setup failed: %v", err)
	}
	mustWrite(t, filesystem, "info/file.txt", content)
	mustWrite(t, filesystem, "info/sub/nested.txt", content)

	const group = "InfoFS"
	config.run(t, group, "GetInfoFile", func(t *testing.T) {
		info, err := filesystem.GetInfo("info/file.txt")
		if err != nil {
			t.Fatalf("GetInfo(%q): got error %v, want nil", "info/file.txt", err)
		}
		if info.Type != core.FileTypeFile {
			t.Errorf("GetInfo(%q): Type = %s, want file", "info/file.txt", info.Type)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("GetInfo(%q): Size = %d, want %d", "info/file.txt", info.Size, len(content))
		}
		if info.Path != "info/file.txt" {
			t.Errorf("GetInfo(%q): Path = %q", "info/file.txt", info.Path)
		}
	})
	config.run(t, group, "GetInfoDir", func(t *testing.T) {
		mustType(t, filesystem, "info/sub", core.FileTypeDirectory)
	})
	config.run(t, group, "GetInfoNotFound", func(t *testing.T) {
		mustType(t, filesystem, "info/missing", core.FileTypeNotFound)
	})
	config.run(t, group, "GetInfosFlat", func(t *testing.T) {
		infos, err := filesystem.GetInfos(core.FileSelector{BaseDir: "info"})
		if err != nil {
			t.Fatalf("GetInfos(info): got error %v, want nil", err)
		}
		want := []string{"info/file.txt", "info/sub"}
		if got := paths(infos); !slices.Equal(got, want) {
			t.Errorf("GetInfos(info): got %v, want %v", got, want)
		}
	})
	config.run(t, group, "GetInfosRecursive", func(t *testing.T) {
		infos, err := filesystem.GetInfos(core.FileSelector{BaseDir: "info", Recursive: true})
		if err != nil {
			t.Fatalf("GetInfos(info, recursive): got error %v, want nil", err)
		}
		want := []string{"info/file.txt", "info/sub", "info/sub/nested.txt"}
		if got := paths(infos); !slices.Equal(got, want) {
			t.Errorf("GetInfos(info, recursive): got %v, want %v", got, want)
		}
	})
	config.run(t, group, "GetInfosMaxRecursion", func(t *testing.T) {
		infos, err := filesystem.GetInfos(core.FileSelector{BaseDir: "info", Recursive: true, MaxRecursion: 1})
		if err != nil {
			t.Fatalf("GetInfos(info, depth 1): got error %v, want nil", err)
		}
		want := []string{"info/file.txt", "info/sub"}
		if got := paths(infos); !slices.Equal(got, want) {
			t.Errorf("GetInfos(info, depth 1): got %v, want %v", got, want)
		}
	})
	config.run(t, group, "GetInfosNotFound", func(t *testing.T) {
		_, err := filesystem.GetInfos(core.FileSelector{BaseDir: "info/missing"})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("GetInfos(info/missing): got error %v, want fs.ErrNotExist", err)
		}

		infos, err := filesystem.GetInfos(core.FileSelector{BaseDir: "info/missing", AllowNotFound: true})
		if err != nil {
			t.Errorf("GetInfos(info/missing, allow): got error %v, want nil", err)
		}
		if len(infos) != 0 {
			t.Errorf("GetInfos(info/missing, allow): got %d entries, want 0", len(infos))
		}
	})
	config.run(t, group, "GetInfosForPaths", func(t *testing.T) {
		infos, err := filesystem.GetInfosForPaths([]string{"info/sub", "info/missing", "info/file.txt"})
		if err != nil {
			t.Fatalf("GetInfosForPaths: got error %v, want nil", err)
		}
		want := []core.FileType{core.FileTypeDirectory, core.FileTypeNotFound, core.FileTypeFile}
		if len(infos) != len(want) {
			t.Fatalf("GetInfosForPaths: got %d entries, want %d", len(infos), len(want))
		}
		for i, info := range infos {
			if info.Type != want[i] {
				t.Errorf("GetInfosForPaths[%d]: Type = %s, want %s", i, info.Type, want[i])
			}
		}
	})
}
