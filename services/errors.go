package services

import (
	"errors"
	"fmt"
)

// ErrMatchNotFound is returned by GetMatch when no match row carries the
// requested label.
var ErrMatchNotFound = errors.New("match not found")

// PersistenceError wraps any storage failure (connectivity, constraint
// violation, timeout). Callers match it with errors.As; the underlying driver
// error stays inside and is never sent to clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
