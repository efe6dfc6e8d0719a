package services

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned when an operation targets an order id that does not exist
var ErrOrderNotFound = errors.New("order not found")

// ValidationError reports malformed or out-of-range input. It is always raised
// before anything is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StoreError reports that the underlying persistence failed. Callers may retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is, or wraps, a *ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsStoreError reports whether err is, or wraps, a *StoreError
func IsStoreError(err error) bool {
	var sErr *StoreError
	return errors.As(err, &sErr)
}
