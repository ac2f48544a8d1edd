package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"maps"
)

// fsError is the concrete implementation of FSError.
// It is private to enforce construction through package functions.
type fsError struct {
	code    ErrorCode
	message string
	context map[string]interface{}
	cause   error
}

// sentinels maps codes to the io/fs errors they are equivalent to.
var sentinels = map[ErrorCode]error{
	CodeNotFound:       fs.ErrNotExist,
	CodeAlreadyExists:  fs.ErrExist,
	CodePermission:     fs.ErrPermission,
	CodeInvalidInput:   fs.ErrInvalid,
	CodeNotImplemented: stderrors.ErrUnsupported,
}

// Error returns the string representation of the error.
// Format: "[CODE] message" or "[CODE] message: cause" if cause is present.
func (e *fsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the error code.
func (e *fsError) Code() ErrorCode {
	return e.code
}

// Message returns the error message.
func (e *fsError) Message() string {
	return e.message
}

// Context returns a copy of the context map, or nil.
func (e *fsError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	return maps.Clone(e.context)
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *fsError) Unwrap() error {
	return e.cause
}

// Is reports whether target is the io/fs sentinel equivalent to e's code.
func (e *fsError) Is(target error) bool {
	sentinel, ok := sentinels[e.code]
	return ok && sentinel == target
}

// convert returns err as an FSError, wrapping plain errors with CodeUnknown.
func convert(err error) FSError {
	var fsErr FSError
	if stderrors.As(err, &fsErr) {
		return fsErr
	}
	return &fsError{
		code:    CodeUnknown,
		message: err.Error(),
		cause:   err,
	}
}
