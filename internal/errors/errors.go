package errors

import "fmt"

// ErrorCode represents a Recetario error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrConflict         ErrorCode = "CONFLICT"          // 409
	ErrExtractionFailed ErrorCode = "EXTRACTION_FAILED" // 502
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// AppError represents a structured error with code, status, and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a recipe or folder cannot be found.
func NewNotFound(identifier string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewExtractionFailed creates a 502 error for failures in the extraction
// collaborator. All extraction failures (network, private post, malformed
// URL, upstream change) surface as this single kind with a cause message.
func NewExtractionFailed(url string, cause error) *AppError {
	msg := "extraction failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code:    ErrExtractionFailed,
		Status:  502,
		Message: msg,
		Details: map[string]any{"url": url},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AppError); ok {
		return aErr.Code == code
	}
	return false
}
