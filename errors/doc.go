// Package errors provides the structured errors returned by the vfs packages.
//
// Every error carries an ErrorCode naming the failure category, a
// human-readable message, optional context metadata, and an optional cause.
// The categories follow the error kinds a filesystem layer reports:
//
//   - CodeNotImplemented: the requested backend or operation is not compiled in
//   - CodeInvalidInput: a malformed URI, path, or option
//   - CodeIO: a target-requiring operation received an empty path
//   - CodeUnknown: an invariant violation, such as a backend returning a path
//     outside the confined subtree
//   - CodeNotFound, CodeAlreadyExists, CodePermission: mirror the io/fs sentinels
//
// Errors created here remain compatible with the standard library. errors.Is
// and errors.As traverse the cause chain, and an error whose code mirrors an
// io/fs sentinel also matches that sentinel:
//
//	err := errors.Newf(errors.CodeNotFound, "bucket %q does not exist", name)
//	stderrors.Is(err, fs.ErrNotExist) // true
//
// Wrapping keeps the original error reachable:
//
//	if err := client.Remove(path); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to remove file")
//	}
//
// Context can be attached for logging and serialized with ToJSON:
//
//	err = errors.WithContext(err, "path", path)
//	json.NewEncoder(os.Stderr).Encode(errors.ToJSON(err))
package errors
