package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// setWindows switches the path syntax for the duration of the test.
func setWindows(t *testing.T, on bool) {
	t.Helper()
	prev := windows
	windows = on
	t.Cleanup(func() { windows = prev })
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		base string
		stem string
		want string
	}{
		{"empty base", "", "a/b", "a/b"},
		{"empty stem", "a/b/", "", "a/b/"},
		{"trailing slash base", "a/b/", "c", "a/b/c"},
		{"no trailing slash", "a/b", "c", "a/b/c"},
		{"leading slash stem", "a/b/", "/c", "a/b/c"},
		{"nested stem", "base/", "x/y/z.txt", "base/x/y/z.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.base, tt.stem))
		})
	}
}

func TestSlashHelpers(t *testing.T) {
	assert.Equal(t, "", EnsureTrailingSlash(""))
	assert.Equal(t, "a/", EnsureTrailingSlash("a"))
	assert.Equal(t, "a/", EnsureTrailingSlash("a/"))

	assert.Equal(t, "a", RemoveTrailingSlash("a//"))
	assert.Equal(t, "", RemoveTrailingSlash("/"))
	assert.Equal(t, "a/b", RemoveLeadingSlash("//a/b"))
}

func TestToSlashes(t *testing.T) {
	t.Run("windows", func(t *testing.T) {
		setWindows(t, true)
		assert.Equal(t, "C:/data/x", ToSlashes(`C:\data\x`))
		assert.Equal(t, "a/b/c", Normalize(`a\b\c`))
	})

	t.Run("posix keeps backslashes", func(t *testing.T) {
		setWindows(t, false)
		assert.Equal(t, `/tmp/a\b`, ToSlashes(`/tmp/a\b`))
		assert.Equal(t, `/tmp/a\b`, Normalize(`/tmp/a\b`))
	})
}

func TestParentBaseExtension(t *testing.T) {
	tests := []struct {
		path   string
		parent string
		base   string
		ext    string
	}{
		{"a/b/c.txt", "a/b", "c.txt", "txt"},
		{"c.tar.gz", "", "c.tar.gz", "gz"},
		{"a/b/", "a", "b", ""},
		{"dir.d/file", "dir.d", "file", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.parent, Parent(tt.path))
			assert.Equal(t, tt.base, Base(tt.path))
			assert.Equal(t, tt.ext, Extension(tt.path))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"/", "/"},
		{"a/./b/", "a/b"},
		{"/tmp//x/../y", "/tmp/y"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsAbsolute(t *testing.T) {
	tests := []struct {
		in      string
		windows bool
		posix   bool
	}{
		{in: "/tmp/x", windows: true, posix: true},
		{in: `C:\data`, windows: true, posix: false},
		{in: "d:/data", windows: true, posix: false},
		{in: `\\server\share`, windows: true, posix: false},
		{in: "1:/data", windows: false, posix: false},
		{in: "relative/path", windows: false, posix: false},
		{in: "s3://bucket", windows: false, posix: false},
		{in: "", windows: false, posix: false},
		{in: "not a uri", windows: false, posix: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			setWindows(t, true)
			assert.Equal(t, tt.windows, IsAbsolute(tt.in), "windows")

			setWindows(t, false)
			assert.Equal(t, tt.posix, IsAbsolute(tt.in), "posix")
		})
	}
}

func TestHasTraversal(t *testing.T) {
	assert.True(t, HasTraversal(".."))
	assert.True(t, HasTraversal("a/../b"))
	assert.True(t, HasTraversal(`a\..\b`))
	assert.False(t, HasTraversal("a/..b/c"))
	assert.False(t, HasTraversal("a/b..c"))
}

func TestIsAncestor(t *testing.T) {
	assert.True(t, IsAncestor("", "a"))
	assert.False(t, IsAncestor("", ""))
	assert.True(t, IsAncestor("a/b", "a/b/c"))
	assert.True(t, IsAncestor("a/b/", "a/b/c"))
	assert.False(t, IsAncestor("a/b", "a/bc"))
	assert.False(t, IsAncestor("a/b", "a/b"))
}
