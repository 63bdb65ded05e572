package todo

import (
	"errors"
	"fmt"
)

// Error kinds. Every failing registry operation wraps exactly one of them.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrIO              = errors.New("i/o error")
	ErrSerialization   = errors.New("serialization error")
	ErrDeserialization = errors.New("deserialization error")
)

var errorKinds = []error{
	ErrNotFound,
	ErrAlreadyExists,
	ErrIO,
	ErrSerialization,
	ErrDeserialization,
}

// OpError describes a failed registry operation.
type OpError struct {
	Op      string // edit, remove, save, load
	Subject string // task name or file path
	Kind    error  // one of the Err* kinds
	Err     error  // underlying cause, may be nil
}

func (e *OpError) Error() string {
	msg := fmt.Sprintf("%s %q: %s", e.Op, e.Subject, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func opError(op, subject string, kind, cause error) *OpError {
	return &OpError{Op: op, Subject: subject, Kind: kind, Err: cause}
}
