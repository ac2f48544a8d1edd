package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
)

// Exit codes of the vfs command.
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitUsageError     = 2
	ExitPanic          = 3
	ExitNotFound       = 4
	ExitInvalidInput   = 5
	ExitNotImplemented = 6
	ExitConfigError    = 10
)

// classify attaches an error code to io/fs sentinel errors that carry none.
// The path of an *fs.PathError is kept as context.
func classify(err error) error {
	if err == nil || errors.GetCode(err) != errors.CodeUnknown {
		return err
	}

	var (
		code    errors.ErrorCode
		message string
	)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code, message = errors.CodeNotFound, "not found"
	case errors.Is(err, fs.ErrExist):
		code, message = errors.CodeAlreadyExists, "already exists"
	case errors.Is(err, fs.ErrPermission):
		code, message = errors.CodePermission, "permission denied"
	case errors.Is(err, fs.ErrInvalid):
		code, message = errors.CodeInvalidInput, "invalid argument"
	case errors.Is(err, core.ErrUnsupported):
		code, message = errors.CodeNotImplemented, "not supported"
	default:
		return err
	}

	var ctx map[string]interface{}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		ctx = map[string]interface{}{"op": pathErr.Op, "path": pathErr.Path}
	}
	return errors.WrapWithContext(err, code, message, ctx)
}

// isUsageError reports whether err comes from cobra's argument or flag
// parsing.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		`invalid argument "`,
		"flag needs an argument",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the process exit code for err.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if isUsageError(err) {
		return ExitUsageError
	}

	switch errors.GetCode(classify(err)) {
	case errors.CodeNotFound:
		return ExitNotFound
	case errors.CodeInvalidInput:
		return ExitInvalidInput
	case errors.CodeNotImplemented:
		return ExitNotImplemented
	case errors.CodeInvalidConfig:
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}

// printError writes err to w, as a JSON object when asJSON is set.
func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		_ = json.NewEncoder(w).Encode(errors.ToJSON(classify(err)))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
