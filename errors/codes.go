package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// CodeNotImplemented indicates the requested functionality is not available
	// in this build, such as a filesystem family that was compiled out.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeIO indicates an I/O level failure, including operations that
	// require a target path but received an empty one.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeNotFound indicates a file, directory, or bucket does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the target already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodePermission indicates the backend denied access.
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error or a violated invariant.
	CodeUnknown ErrorCode = "UNKNOWN"
)
