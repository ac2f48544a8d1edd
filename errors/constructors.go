package errors

import "fmt"

// New creates a new FSError with the given code and message.
//
// Example:
//
//	err := errors.New(errors.CodeIO, "empty path")
func New(code ErrorCode, message string) FSError {
	return &fsError{
		code:    code,
		message: message,
	}
}

// Newf creates a new FSError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "unrecognized filesystem type %q in URI %q", scheme, uri)
func Newf(code ErrorCode, format string, args ...interface{}) FSError {
	return &fsError{
		code:    code,
		message: fmt.Sprintf(format, args...),
	}
}
