package errors

// WithContext adds a single context field to an error.
// Returns a new FSError; existing context fields are preserved.
//
// If err is not an FSError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", path)
func WithContext(err error, key string, value interface{}) FSError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not an FSError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) FSError {
	if err == nil {
		return nil
	}

	fsErr := convert(err)
	merged := make(map[string]interface{}, len(ctx))
	for k, v := range fsErr.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &fsError{
		code:    fsErr.Code(),
		message: fsErr.Message(),
		context: merged,
		cause:   fsErr.Unwrap(),
	}
}
