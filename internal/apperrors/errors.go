package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidEvent indicates that a business event is malformed and no journal
// entry can be built from it.
var ErrInvalidEvent = errors.New("invalid business event")

// ErrUnknownAccount indicates that a required chart-of-accounts code does not
// exist for the company.
var ErrUnknownAccount = errors.New("unknown account code")

// ErrLedgerImbalance indicates that a journal entry's debits and credits do
// not match exactly.
var ErrLedgerImbalance = errors.New("ledger imbalance")

// ErrInsufficientStock indicates that an outbound movement would drive the
// equipment quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
