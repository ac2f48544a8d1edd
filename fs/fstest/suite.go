// Package fstest provides a conformance test suite for validating
// core.FileSystem implementations.
//
// Backends and decorators import the suite from their own tests and run it
// against fresh, empty filesystems. The suite validates the interface
// contract; documented backend differences are declared through
// FSTestConfig.
//
// Example usage:
//
//	func TestMyBackend(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FileSystem {
//	        return mybackend.New()
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/vfs/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, parents are created implicitly and non-recursive CreateDir
	// does not require an existing parent.
	VirtualDirectories bool

	// SkipTests lists specific test names to skip.
	// Format: "Group" or "Group/SubTest" (e.g., "StreamFS/Append").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// ObjectStoreTestConfig returns configuration for S3-like filesystems.
func ObjectStoreTestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		SkipTests:          []string{"StreamFS/Append"},
	}
}

func (c FSTestConfig) skip(t *testing.T, name string) {
	t.Helper()
	if slices.Contains(c.SkipTests, name) {
		t.Skip("Skipped by provider configuration")
	}
}

// run runs a named subtest unless the configuration skips it.
func (c FSTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		c.skip(t, group+"/"+name)
		fn(t)
	})
}

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each group.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.FileSystem) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FileSystem, config FSTestConfig) {
	t.Run("InfoFS", func(t *testing.T) {
		config.skip(t, "InfoFS")
		TestInfoFSWithConfig(t, newFS(), config)
	})

	t.Run("DirFS", func(t *testing.T) {
		config.skip(t, "DirFS")
		TestDirFSWithConfig(t, newFS(), config)
	})

	t.Run("ManageFS", func(t *testing.T) {
		config.skip(t, "ManageFS")
		TestManageFSWithConfig(t, newFS(), config)
	})

	t.Run("StreamFS", func(t *testing.T) {
		config.skip(t, "StreamFS")
		TestStreamFSWithConfig(t, newFS(), config)
	})
}

// mustWrite creates a file with the given content or fails the test.
func mustWrite(t *testing.T, filesystem core.FileSystem, p string, data []byte) {
	t.Helper()
	if err := core.WriteFile(filesystem, p, data); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", p, err)
	}
}

// mustType fails the test unless p has the wanted type.
func mustType(t *testing.T, filesystem core.FileSystem, p string, want core.FileType) {
	t.Helper()
	info, err := filesystem.GetInfo(p)
	if err != nil {
		t.Fatalf("GetInfo(%q): got error %v, want nil", p, err)
	}
	if info.Type != want {
		t.Errorf("GetInfo(%q): Type = %s, want %s", p, info.Type, want)
	}
}

func paths(infos []core.FileInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Path
	}
	slices.Sort(out)
	return out
}
