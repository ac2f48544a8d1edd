package cli

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/resolve"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     *Config
		wantCode errors.ErrorCode
	}{
		{
			name: "full",
			content: `log_level: debug
root: /data
latency: 5ms
seed: 7
s3:
  endpoint: localhost:9000
  region: us-east-1
  scheme: http
  access_key: minio
  secret_key: minio123
`,
			want: &Config{
				LogLevel: "debug",
				Root:     "/data",
				Latency:  "5ms",
				Seed:     7,
				S3: resolve.S3Defaults{
					Endpoint:  "localhost:9000",
					Region:    "us-east-1",
					Scheme:    "http",
					AccessKey: "minio",
					SecretKey: "minio123",
				},
			},
		},
		{
			name:    "empty",
			content: "",
			want:    &Config{},
		},
		{
			name:     "malformed yaml",
			content:  "root: [unterminated",
			wantCode: errors.CodeInvalidConfig,
		},
		{
			name:     "bad latency",
			content:  "latency: soon",
			wantCode: errors.CodeInvalidConfig,
		},
		{
			name:     "negative latency",
			content:  "latency: -1s",
			wantCode: errors.CodeInvalidConfig,
		},
		{
			name:     "bad log level",
			content:  "log_level: loud",
			wantCode: errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vfs.yaml")
			writeFile(t, path, tt.content)

			cfg, err := LoadConfig(path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestConfigLatency(t *testing.T) {
	d, err := (&Config{Latency: "250ms"}).latency()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	d, err = (&Config{}).latency()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("warn", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "key=value")
}
