package errors

// FSError extends the standard error interface with structured information.
//
// FSError provides an error code for categorization, contextual metadata,
// and compatibility with standard library error handling (errors.Is,
// errors.As, errors.Unwrap).
type FSError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
