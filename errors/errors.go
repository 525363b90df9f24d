// Package errors provides const-declarable sentinel errors that can carry a wrapped cause.
// It shadows the standard library errors package so callers only need one import.
package errors

import (
	"errors"
	"strings"
)

// ErrSeparator separates a sentinel message from the message of its cause.
const ErrSeparator = " -- "

// Error is a string based error allowing package level const sentinel errors.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is reports whether target carries the same sentinel message, directly or as the
// prefix of a wrapped error built with Wrap.
func (e Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(e) || strings.HasPrefix(msg, string(e)+ErrSeparator)
}

// Wrap returns an error with this sentinel as its message and err as its cause.
func (e Error) Wrap(err error) error {
	return &wrappedError{sentinel: e, cause: err}
}

// Wrapf wraps a cause built from a plain message.
func (e Error) Wrapf(msg string) error {
	return &wrappedError{sentinel: e, cause: errors.New(msg)}
}

type wrappedError struct {
	sentinel Error
	cause    error
}

func (w *wrappedError) Error() string {
	if w.cause == nil {
		return string(w.sentinel)
	}
	return string(w.sentinel) + ErrSeparator + w.cause.Error()
}

func (w *wrappedError) Is(target error) bool {
	s, ok := target.(Error)
	return ok && s == w.sentinel
}

func (w *wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
