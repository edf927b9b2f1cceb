package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeDuplicate       = "DUPLICATE_ENTITY"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeIO              = "IO_FAILURE"
	ErrCodeFormat          = "FORMAT_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeTooLarge        = "PAYLOAD_TOO_LARGE"
)

// AppError represents an application error with an error code and the HTTP status
// the api package renders it with.
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "FORMAT_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err, or any error it wraps, is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// NewInvalidArgumentError creates a new INVALID_ARGUMENT error
func NewInvalidArgumentError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Status:  400,
	}
}

// NewDuplicateError creates a new DUPLICATE_ENTITY error
func NewDuplicateError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicate,
		Message: fmt.Sprintf("%s already exists: %v", resource, id),
		Status:  409,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewIOError creates a new IO_FAILURE error for an operation on path.
func NewIOError(op string, path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: fmt.Sprintf("unable to %s %s", op, path),
		Status:  500,
		Err:     err,
	}
}

// NewFormatError creates a new FORMAT_ERROR
func NewFormatError(reason string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFormat,
		Message: "malformed deck document: " + reason,
		Status:  422,
		Err:     err,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewTooLargeError creates a new PAYLOAD_TOO_LARGE error for a body over limit bytes.
func NewTooLargeError(limit int64, err error) *AppError {
	return &AppError{
		Code:    ErrCodeTooLarge,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
		Status:  413,
		Err:     err,
	}
}
