package resolve

import (
	"bytes"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/billy"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/hdfs"
)

func TestFromURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantType core.FSType
		wantPath string
		wantCode errors.ErrorCode
	}{
		{
			name:     "file uri",
			uri:      "file:///tmp/x",
			wantType: core.FSTypeLocal,
			wantPath: "/tmp/x",
		},
		{
			name:     "mock uri strips leading slash",
			uri:      "mock:///a/b",
			wantType: core.FSTypeMemory,
			wantPath: "a/b",
		},
		{
			name:     "mock uri without path",
			uri:      "mock://",
			wantType: core.FSTypeMemory,
			wantPath: "",
		},
		{
			name:     "unknown scheme",
			uri:      "foo://bar",
			wantCode: errors.CodeInvalidInput,
		},
		{
			name:     "scheme is case-sensitive",
			uri:      "FILE:///tmp/x",
			wantCode: errors.CodeInvalidInput,
		},
		{
			name:     "absolute path is not a uri",
			uri:      "/tmp/x",
			wantCode: errors.CodeInvalidInput,
		},
		{
			name:     "not a uri",
			uri:      "not a uri",
			wantCode: errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, p, err := FromURI(tt.uri)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				assert.Nil(t, fsys)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, fsys.Type())
			assert.Equal(t, tt.wantPath, p)
		})
	}
}

func TestFromURI_UnknownSchemeMessage(t *testing.T) {
	_, _, err := FromURI("foo://bar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foo")
	assert.Contains(t, err.Error(), "foo://bar")
}

func TestFromURI_FreshInstances(t *testing.T) {
	a, _, err := FromURI("mock:///")
	require.NoError(t, err)
	b, _, err := FromURI("mock:///")
	require.NoError(t, err)

	require.NoError(t, core.WriteFile(a, "only-in-a.txt", []byte("a")))
	exists, err := core.Exists(b, "only-in-a.txt")
	require.NoError(t, err)
	assert.False(t, exists, "each resolution must produce a fresh mock filesystem")
}

func TestFromURI_MockEpoch(t *testing.T) {
	epoch := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := New(WithClock(func() time.Time { return epoch }))

	fsys, _, err := r.FromURI("mock:///")
	require.NoError(t, err)

	mem, ok := fsys.(*billy.MemoryFS)
	require.True(t, ok)
	assert.Equal(t, epoch, mem.Epoch())
}

func TestFromURI_HDFS(t *testing.T) {
	if hdfs.Enabled {
		t.Skip("HDFS support compiled in")
	}

	for _, uri := range []string{"hdfs://namenode/data", "viewfs://cluster/data"} {
		_, _, err := FromURI(uri)
		require.Error(t, err, uri)
		assert.Equal(t, errors.CodeNotImplemented, errors.GetCode(err), uri)
	}
}

func TestFromURIOrPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType core.FSType
		wantPath string
		wantErr  bool
	}{
		{name: "absolute path", input: "/tmp/x", wantType: core.FSTypeLocal, wantPath: "/tmp/x"},
		{name: "file uri", input: "file:///tmp/x", wantType: core.FSTypeLocal, wantPath: "/tmp/x"},
		{name: "mock uri", input: "mock:///a", wantType: core.FSTypeMemory, wantPath: "a"},
		{name: "relative path", input: "relative/path", wantErr: true},
		{name: "not a uri", input: "not a uri", wantErr: true},
		{name: "unknown scheme", input: "foo://bar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, p, err := FromURIOrPath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
				assert.Contains(t, err.Error(), "Expected URI or absolute local path, got '"+tt.input+"'")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, fsys.Type())
			assert.Equal(t, tt.wantPath, p)
		})
	}
}

func TestFromURIOrPath_PlatformSyntax(t *testing.T) {
	if runtime.GOOS == "windows" {
		fsys, p, err := FromURIOrPath(`C:\data\x`)
		require.NoError(t, err)
		assert.Equal(t, core.FSTypeLocal, fsys.Type())
		assert.Equal(t, "C:/data/x", p)
		return
	}

	_, _, err := FromURIOrPath(`C:\data\x`)
	require.Error(t, err, "drive letters are not absolute paths on %s", runtime.GOOS)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{name: "escaped backslash in file uri", input: "file:///tmp/a%5Cb", wantPath: `/tmp/a\b`},
		{name: "backslash in absolute path", input: `/tmp/a\b`, wantPath: `/tmp/a\b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, p, err := FromURIOrPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, core.FSTypeLocal, fsys.Type())
			assert.Equal(t, tt.wantPath, p)
		})
	}
}

func TestFromURIOrPath_ParseErrorPassesThrough(t *testing.T) {
	_, _, err := FromURIOrPath("mock://%zz/a")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Cannot parse URI")
	assert.NotContains(t, err.Error(), "Expected URI or absolute local path")
}

func TestResolverLogsResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, _, err := New(WithLogger(logger)).FromURI("mock:///a/b")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "resolved filesystem")
	assert.Contains(t, out, "scheme=mock")
	assert.Contains(t, out, "path=a/b")
}

func TestRawScheme(t *testing.T) {
	tests := map[string]string{
		"file:///tmp":  "file",
		"S3://bucket":  "S3",
		"git+ssh://x":  "git+ssh",
		"/tmp/x":       "",
		"relative/p":   "",
		"1abc://x":     "",
		"not a uri":    "",
		`C:\data\file`: "C",
	}
	for in, want := range tests {
		assert.Equal(t, want, rawScheme(in), in)
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()

	schemes := make([]string, 0, len(caps))
	for _, c := range caps {
		schemes = append(schemes, c.Scheme)
	}
	assert.Equal(t, "file,mock,s3,hdfs,viewfs", strings.Join(schemes, ","))

	assert.True(t, Supports("file"))
	assert.True(t, Supports("mock"))
	assert.Equal(t, s3Enabled, Supports("s3"))
	assert.Equal(t, hdfs.Enabled, Supports("hdfs"))
	assert.False(t, Supports("foo"))
}
