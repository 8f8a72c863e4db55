package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeInternal = "INTERNAL_ERROR"
)

// AppError is an error that knows its HTTP status and client-facing message.
type AppError struct {
	Code    string // e.g. "NOT_FOUND"
	Message string // written to the response body
	Status  int
	Err     error // underlying cause, never shown to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a NOT_FOUND error for the given resource name,
// e.g. "User" yields "User not found".
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// NewInternalError wraps err as an INTERNAL_ERROR.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AsAppError returns the AppError in err's chain, wrapping anything else
// as an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

// IsNotFound reports whether err carries a NOT_FOUND AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}
