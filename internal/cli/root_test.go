package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/errors"
)

// run executes the vfs command with args and stdin, returning stdout and
// stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPutAndCat(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "hello.txt")

	_, _, err := run(t, "hello", "put", target)
	require.NoError(t, err)
	assert.Equal(t, "hello", readFile(t, target))

	_, _, err = run(t, " world", "put", "--append", "file://"+filepath.ToSlash(target))
	require.NoError(t, err)

	out, _, err := run(t, "", "cat", target)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestCat_Missing(t *testing.T) {
	_, _, err := run(t, "", "cat", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeForError(err))
}

func TestLs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "aaa")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b")

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, "", "ls", dir)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "file\t3\t"), lines[0])
		assert.True(t, strings.HasSuffix(lines[0], "a.txt"), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "directory\t-\t"), lines[1])
	})

	t.Run("recursive json", func(t *testing.T) {
		out, _, err := run(t, "", "--json", "ls", "-r", dir)
		require.NoError(t, err)

		var entries []entry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 3)

		byBase := map[string]entry{}
		for _, e := range entries {
			byBase[filepath.Base(e.Path)] = e
		}
		require.Contains(t, byBase, "b.txt")
		assert.Equal(t, "file", byBase["b.txt"].Type)
		require.NotNil(t, byBase["b.txt"].Size)
		assert.Equal(t, int64(1), *byBase["b.txt"].Size)
		assert.Equal(t, "directory", byBase["sub"].Type)
		assert.Nil(t, byBase["sub"].Size)
	})

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(dir, "nope")

		_, _, err := run(t, "", "ls", missing)
		require.Error(t, err)
		assert.Equal(t, ExitNotFound, ExitCodeForError(err))

		out, _, err := run(t, "", "ls", "--allow-missing", missing)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "aaa")

	out, _, err := run(t, "", "stat", filepath.Join(dir, "a.txt"), filepath.Join(dir, "missing"), dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "file\t3\t"))
	assert.True(t, strings.HasPrefix(lines[1], "non-existent\t"))
	assert.True(t, strings.HasPrefix(lines[2], "directory\t"))
}

func TestStat_MixedFileSystems(t *testing.T) {
	_, _, err := run(t, "", "stat", t.TempDir(), "mock:///a")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestMkdirAndRmdir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	_, _, err := run(t, "", "mkdir", nested)
	require.Error(t, err, "parent is missing")

	_, _, err = run(t, "", "mkdir", "-p", nested)
	require.NoError(t, err)
	assert.DirExists(t, nested)

	writeFile(t, filepath.Join(dir, "a", "f.txt"), "x")
	_, _, err = run(t, "", "rmdir", "--contents", filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "a"))
	assert.NoDirExists(t, filepath.Join(dir, "a", "b"))
	assert.NoFileExists(t, filepath.Join(dir, "a", "f.txt"))

	_, _, err = run(t, "", "rmdir", filepath.Join(dir, "a"))
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "a"))
}

func TestRm(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	_, _, err := run(t, "", "rm", a, b)
	require.NoError(t, err)
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)

	_, _, err = run(t, "", "rm", a)
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeForError(err))
}

func TestMvAndCp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "payload")

	copied := filepath.Join(dir, "copy.txt")
	_, _, err := run(t, "", "cp", src, copied)
	require.NoError(t, err)
	assert.Equal(t, "payload", readFile(t, copied))
	assert.FileExists(t, src)

	moved := filepath.Join(dir, "moved.txt")
	_, _, err = run(t, "", "mv", src, moved)
	require.NoError(t, err)
	assert.Equal(t, "payload", readFile(t, moved))
	assert.NoFileExists(t, src)
}

func TestMv_AcrossFileSystems(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "payload")

	_, _, err := run(t, "", "mv", src, "mock:///dest.txt")
	require.NoError(t, err)
	assert.NoFileExists(t, src)
}

func TestCp_AcrossFileSystemsRejectsDirectories(t *testing.T) {
	_, _, err := run(t, "", "cp", t.TempDir(), "mock:///dest")
	require.Error(t, err)
	assert.Equal(t, ExitNotImplemented, ExitCodeForError(err))
}

func TestRootFlag(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "data", "--root", dir, "put", "/nested.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", readFile(t, filepath.Join(dir, "nested.txt")))

	_, _, err = run(t, "", "--root", dir, "cat", "/../escape")
	require.Error(t, err)
}

func TestLatencyFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")

	out, _, err := run(t, "", "--latency", "1ms", "--seed", "42", "cat", filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", out)

	_, _, err = run(t, "", "--latency=-1ms", "cat", filepath.Join(dir, "a.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "a.txt"), "from config root")

	cfgPath := filepath.Join(dir, "vfs.yaml")
	writeFile(t, cfgPath, "log_level: debug\nroot: "+filepath.Join(dir, "data")+"\n")

	out, stderr, err := run(t, "", "--config", cfgPath, "cat", "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "from config root", out)
	assert.Contains(t, stderr, "opened filesystem")

	// Flags override the file.
	_, stderr, err = run(t, "", "--config", cfgPath, "--log-level", "error", "cat", "/a.txt")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "opened filesystem")
}

func TestSetupErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{
			name:     "missing env file",
			args:     []string{"--env-file", "/nonexistent/.env", "ls", "/"},
			wantExit: ExitConfigError,
		},
		{
			name:     "missing config file",
			args:     []string{"--config", "/nonexistent/vfs.yaml", "ls", "/"},
			wantExit: ExitNotFound,
		},
		{
			name:     "bad log level",
			args:     []string{"--log-level", "loud", "ls", "/"},
			wantExit: ExitInvalidInput,
		},
		{
			name:     "unknown scheme",
			args:     []string{"ls", "foo://bar"},
			wantExit: ExitInvalidInput,
		},
		{
			name:     "missing argument",
			args:     []string{"cat"},
			wantExit: ExitUsageError,
		},
		{
			name:     "unknown flag",
			args:     []string{"ls", "--bogus", "/"},
			wantExit: ExitUsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, ExitCodeForError(err))
		})
	}
}

func TestEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	writeFile(t, envPath, "VFS_CLI_TEST_VALUE=loaded\n")
	t.Setenv("VFS_CLI_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("VFS_CLI_TEST_VALUE"))

	_, _, err := run(t, "", "--env-file", envPath, "ls", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("VFS_CLI_TEST_VALUE"))
}

func TestSameFileSystem(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "/tmp/a", b: "/tmp/b", want: true},
		{a: "/tmp/a", b: "file:///tmp/b", want: true},
		{a: "s3://bucket/a", b: "s3://other/b", want: true},
		{a: "s3://bucket/a?region=us-east-1", b: "s3://bucket/b", want: false},
		{a: "s3://ak:sk@bucket/a", b: "s3://bucket/b", want: false},
		{a: "hdfs://nn:8020/a", b: "hdfs://nn:8020/b", want: true},
		{a: "hdfs://nn:8020/a", b: "hdfs://other:8020/b", want: false},
		{a: "mock:///a", b: "mock:///b", want: false},
		{a: "/tmp/a", b: "mock:///a", want: false},
		{a: "foo://x/a", b: "foo://x/b", want: false},
	}

	if runtime.GOOS == "windows" {
		tests = append(tests, struct {
			a, b string
			want bool
		}{a: `C:\data\a`, b: "file:///C:/data/b", want: true})
	} else {
		tests = append(tests, struct {
			a, b string
			want bool
		}{a: `C:\data\a`, b: "file:///C:/data/b", want: false})
	}

	for _, tt := range tests {
		t.Run(tt.a+" "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, sameFileSystem(tt.a, tt.b))
		})
	}
}
