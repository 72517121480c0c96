// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Record errors.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	// Storage errors. A failed persistence write does not roll back the
	// in-memory mutation; durability is best-effort for the session.
	ErrPersistence = errors.New("persistence failed")

	// Statement import errors.
	ErrImport = errors.New("import failed")

	// Backup errors.
	ErrRestore = errors.New("restore failed")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
