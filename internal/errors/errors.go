package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeUnavailable indicates the remote service could not be reached
	CodeUnavailable Code = "unavailable"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"

	// CodeRejected indicates a remote endpoint answered with a non-success status
	CodeRejected Code = "rejected"

	// CodeDecode indicates a remote response could not be decoded
	CodeDecode Code = "decode"

	// CodeBusy indicates another operation is already in flight
	CodeBusy Code = "busy"
)

// MetaStatusCode is the Meta key carrying the HTTP status of a rejected call
const MetaStatusCode = "status_code"

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context.
// A wrapped *Error keeps its code and a copy of its metadata.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Unavailable wraps a transport failure
func Unavailable(err error, message string) *Error {
	if err == nil {
		return New(CodeUnavailable, message)
	}
	return WrapWithCode(err, CodeUnavailable, message)
}

// Rejected creates an error for a non-success response, carrying its status code
func Rejected(status int, message string) *Error {
	return New(CodeRejected, message).WithMeta(MetaStatusCode, status)
}

// Decode wraps a response decoding failure
func Decode(err error, message string) *Error {
	if err == nil {
		return New(CodeDecode, message)
	}
	return WrapWithCode(err, CodeDecode, message)
}

// Busy creates a busy error
func Busy(message string) *Error {
	return New(CodeBusy, message)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsUnavailable checks if the error is a transport failure
func IsUnavailable(err error) bool {
	return Is(err, CodeUnavailable)
}

// IsRejected checks if the error is a remote rejection
func IsRejected(err error) bool {
	return Is(err, CodeRejected)
}

// IsDecode checks if the error is a decode error
func IsDecode(err error) bool {
	return Is(err, CodeDecode)
}

// IsBusy checks if the error is a busy error
func IsBusy(err error) bool {
	return Is(err, CodeBusy)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// StatusCode returns the remote status carried by a rejected error, or 0
func StatusCode(err error) int {
	if status, ok := GetMeta(err)[MetaStatusCode].(int); ok {
		return status
	}
	return 0
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
