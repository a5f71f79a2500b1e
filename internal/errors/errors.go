// Package errors defines the application error taxonomy. Every error carries a
// code so callers can decide how to surface it without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown     = "UNKNOWN"
	CodeValidation  = "VALIDATION"
	CodePersistence = "PERSISTENCE"
	CodeDelivery    = "DELIVERY"
	CodeUnexpected  = "UNEXPECTED"
	CodeConfig      = "CONFIG"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't have one.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// NewValidationError reports input the user must correct. No state was changed.
func NewValidationError(message string, cause error) error {
	return &Error{code: CodeValidation, message: message, err: cause}
}

// NewPersistenceError reports a failed storage operation.
func NewPersistenceError(message string, cause error) error {
	return &Error{code: CodePersistence, message: message, err: cause}
}

// NewDeliveryError reports a notification that could not be delivered.
func NewDeliveryError(message string, cause error) error {
	return &Error{code: CodeDelivery, message: message, err: cause}
}

// NewUnexpectedError reports a failure nobody anticipated, such as a recovered panic.
func NewUnexpectedError(message string, cause error) error {
	return &Error{code: CodeUnexpected, message: message, err: cause}
}

// NewConfigError reports invalid or missing configuration.
func NewConfigError(message string, cause error) error {
	return &Error{code: CodeConfig, message: message, err: cause}
}
