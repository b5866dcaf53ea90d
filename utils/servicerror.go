package utils

import "errors"

// Machine-readable error codes shared by the booking, chat and payment
// services. Handlers map these onto HTTP statuses.
const (
	CodeConflict          = "conflict"
	CodeOverlap           = "overlap"
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeInvalidTransition = "invalid_transition"
	CodeSignatureMismatch = "signature_mismatch"
	CodeWindowClosed      = "window_closed"
)

// ServiceError carries a taxonomy code alongside a human-readable reason.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

// NewServiceError builds a ServiceError with the given code and message.
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

// ErrorCode extracts the taxonomy code from err, or "" if err is not a
// ServiceError.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
