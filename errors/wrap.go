package errors

import "fmt"

// Wrap wraps an error with a code and message while preserving the original
// error. The cause stays reachable through errors.Is and errors.As.
//
// Returns nil if err is nil.
//
// Example:
//
//	client, err := minio.New(endpoint, opts)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeInvalidConfig, "failed to create S3 client")
//	}
func Wrap(err error, code ErrorCode, message string) FSError {
	if err == nil {
		return nil
	}

	return &fsError{
		code:    code,
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) FSError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in a single
// operation. The context map is copied.
//
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) FSError {
	if err == nil {
		return nil
	}

	wrapped := &fsError{
		code:    code,
		message: message,
		cause:   err,
	}
	if ctx != nil {
		wrapped.context = make(map[string]interface{}, len(ctx))
		for k, v := range ctx {
			wrapped.context[k] = v
		}
	}
	return wrapped
}
