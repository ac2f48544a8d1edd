package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("original error")
	err := Wrap(cause, CodeIO, "operation failed")

	require.NotNil(t, err)
	assert.Equal(t, CodeIO, err.Code())
	assert.Equal(t, "operation failed", err.Message())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "[IO_ERROR] operation failed: original error", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeIO, "test"))
	assert.Nil(t, Wrapf(nil, CodeIO, "test %s", "arg"))
	assert.Nil(t, WrapWithContext(nil, CodeIO, "test", nil))
}

func TestWrap_PreservesChain(t *testing.T) {
	pathErr := &fs.PathError{Op: "stat", Path: "a/b", Err: fs.ErrNotExist}
	err := Wrap(pathErr, CodeIO, "stat failed")

	assert.True(t, stderrors.Is(err, fs.ErrNotExist))

	var target *fs.PathError
	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, "a/b", target.Path)
}

func TestWrapf(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []interface{}
		want   string
	}{
		{
			name:   "string formatting",
			format: "failed to open %s",
			args:   []interface{}{"bucket/key"},
			want:   "failed to open bucket/key",
		},
		{
			name:   "multiple args",
			format: "%s:%d",
			args:   []interface{}{"namenode", 8020},
			want:   "namenode:8020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrapf(stderrors.New("cause"), CodeIO, tt.format, tt.args...)
			assert.Equal(t, tt.want, err.Message())
		})
	}
}

func TestWrapWithContext(t *testing.T) {
	ctx := map[string]interface{}{"uri": "s3://bucket"}
	err := WrapWithContext(stderrors.New("cause"), CodeInvalidInput, "bad uri", ctx)

	ctx["uri"] = "mutated"

	assert.Equal(t, "s3://bucket", err.Context()["uri"])
}
