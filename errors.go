// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepth is the cause of a *SyntaxError reported when the nesting of
	// objects and arrays exceeds the configured maximum depth.
	ErrMaxDepth = errors.New("maximum depth exceeded")

	// ErrUsage matches every *UsageError according to errors.Is.
	ErrUsage = errors.New("invalid use")
)

// SyntaxError is the concrete type of errors reported for input that does not
// conform to the JSON grammar. A SyntaxError is fatal to the Reader or Scanner
// that reported it.
type SyntaxError struct {
	Location Position
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// IOError reports a failure reading, writing, or decoding the underlying
// stream. It always wraps the lower-level cause.
type IOError struct {
	Op  string // "read", "write", "decode", ...
	Err error
}

// Error satisfies the error interface.
func (e *IOError) Error() string { return e.Op + ": " + e.Err.Error() }

// Unwrap supports error wrapping.
func (e *IOError) Unwrap() error { return e.Err }

// UsageError reports a call that is not permitted in the current state of a
// Reader or Writer. It indicates a programming error, not malformed data.
type UsageError struct {
	Op      string // the method that was called
	Message string

	err error
}

// Error satisfies the error interface.
func (e *UsageError) Error() string { return e.Op + ": " + e.Message }

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// Unwrap supports error wrapping.
func (e *UsageError) Unwrap() error { return e.err }

func usagef(op, msg string, args ...any) *UsageError {
	return &UsageError{Op: op, Message: fmt.Sprintf(msg, args...)}
}

func ioError(op string, err error) error {
	var ioe *IOError
	if errors.As(err, &ioe) {
		return err
	}
	return &IOError{Op: op, Err: err}
}
