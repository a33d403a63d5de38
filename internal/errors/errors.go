// Package errors defines the engine's error taxonomy. Pure computation never
// fails for well-formed input; everything fallible lives at the store
// boundary, and callers need to tell the categories apart to decide what is
// safe to retry.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeStoreRead    = "STORE_READ_FAILED"
	CodeWriteHistory = "WRITE_HISTORY_FAILED"
	CodeWriteMastery = "WRITE_MASTERY_FAILED"
	CodeWriteProfile = "WRITE_PROFILE_FAILED"
)

// AppError carries a stable code alongside a human-readable message and the
// wrapped cause.
type AppError struct {
	Code    string
	Message string
	Err     error
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

// NewValidationError reports a caller-side precondition violation.
func NewValidationError(field, reason string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// NewNotFoundError reports a missing record.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}

// NewStoreReadError reports a failed store read. Selection must surface this
// rather than returning a partial batch.
func NewStoreReadError(err error) *AppError {
	return &AppError{
		Code:    CodeStoreRead,
		Message: "store read failed",
		Err:     err,
	}
}

// NewWriteError reports a failed write in one of the three session-completion
// categories. code must be one of CodeWriteHistory, CodeWriteMastery or
// CodeWriteProfile.
func NewWriteError(code string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: "store write failed",
		Err:     err,
	}
}

// HasCode reports whether any error in err's tree carries the given code.
// Joined errors are walked branch by branch; a match in any branch counts.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if HasCode(e, code) {
				return true
			}
		}
		return false
	}
	if appErr, ok := err.(*AppError); ok {
		if appErr.Code == code {
			return true
		}
		return HasCode(appErr.Err, code)
	}
	return HasCode(stderrors.Unwrap(err), code)
}
