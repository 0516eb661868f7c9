package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a flashdeck error code.
type ErrorCode string

const (
	ErrValidation      ErrorCode = "VALIDATION"      // 400
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST" // 400
	ErrUnauthenticated ErrorCode = "UNAUTHENTICATED" // 401
	ErrNotFound        ErrorCode = "NOT_FOUND"       // 404
	ErrStorageCorrupt  ErrorCode = "STORAGE_CORRUPT" // 422
	ErrStorageRead     ErrorCode = "STORAGE_READ"    // 500
	ErrStorageWrite    ErrorCode = "STORAGE_WRITE"   // 500
	ErrInternal        ErrorCode = "INTERNAL"        // 500
)

// DeckError represents a structured error with code, status, and details.
type DeckError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any

	// cause is the underlying error, if any. Not exposed to clients.
	cause error
}

// Error implements the error interface.
func (e *DeckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause so callers can match on it.
func (e *DeckError) Unwrap() error {
	return e.cause
}

// NewValidation creates a 400 error for an empty or whitespace-only required field.
func NewValidation(field, msg string) *DeckError {
	return &DeckError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
		Details: map[string]any{"field": field},
	}
}

// NewInvalidRequest creates a 400 error for malformed request parameters.
func NewInvalidRequest(msg string) *DeckError {
	return &DeckError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnauthenticated creates a 401 error for actions attempted before login.
func NewUnauthenticated() *DeckError {
	return &DeckError{
		Code:    ErrUnauthenticated,
		Status:  401,
		Message: "login required",
	}
}

// NewNotFound creates a 404 error for a position outside the collection.
func NewNotFound(position, length int) *DeckError {
	return &DeckError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no flashcard at position %d (collection has %d)", position, length),
		Details: map[string]any{"position": position, "length": length},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *DeckError {
	return &DeckError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewStorageCorrupt creates a 422 error for an unparseable stored document.
func NewStorageCorrupt(path string, err error) *DeckError {
	msg := "stored collection is not valid"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &DeckError{
		Code:    ErrStorageCorrupt,
		Status:  422,
		Message: msg,
		Details: map[string]any{"path": path},
		cause:   err,
	}
}

// NewStorageRead creates a 500 error for a read failure other than a missing
// or corrupt document (permission denied, path is a directory, ...).
func NewStorageRead(path string, err error) *DeckError {
	return &DeckError{
		Code:    ErrStorageRead,
		Status:  500,
		Message: fmt.Sprintf("failed to read stored collection: %v", err),
		Details: map[string]any{"path": path},
		cause:   err,
	}
}

// NewStorageWrite creates a 500 error for a failed write-through.
// The mutation that triggered the write has not taken effect.
func NewStorageWrite(path string, err error) *DeckError {
	return &DeckError{
		Code:    ErrStorageWrite,
		Status:  500,
		Message: fmt.Sprintf("failed to save collection: %v", err),
		Details: map[string]any{"path": path},
		cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message is generic; the underlying error is kept in Details for logging.
func NewInternal(err error) *DeckError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &DeckError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
		cause:   err,
	}
}

// Is checks if an error (or any error it wraps) is a DeckError with the given code.
func Is(err error, code ErrorCode) bool {
	var dErr *DeckError
	if stderrors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// As reports whether err is a DeckError and returns it.
func As(err error) (*DeckError, bool) {
	var dErr *DeckError
	if stderrors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}
