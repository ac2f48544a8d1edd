package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat JSON form of an error.
//
// The wrapped error chain is excluded; only the code, message, and context
// are serialized.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Context contains optional metadata about the error.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON
// serialization. Returns nil if err is nil.
//
// For standard errors, uses CodeUnknown and the error message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var fsErr FSError
	if As(err, &fsErr) {
		message = fsErr.Message()
		context = fsErr.Context()
	}

	return &ErrorResponse{
		Code:    string(GetCode(err)),
		Message: message,
		Context: context,
	}
}

// MarshalJSON implements json.Marshaler for fsError.
func (e *fsError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:    string(e.code),
		Message: e.message,
		Context: e.context,
	})
	if err != nil {
		return nil, &fsError{
			code:    CodeInternal,
			message: "failed to marshal error response",
			cause:   err,
		}
	}
	return data, nil
}
