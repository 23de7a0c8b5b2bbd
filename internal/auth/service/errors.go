package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage wraps failures of the credential store.
	ErrStorage = errors.New("storage failure")
)

// InputError carries a client-facing reason for rejecting a request.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(reason string) error {
	return &InputError{Reason: reason}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
