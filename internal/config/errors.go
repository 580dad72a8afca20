package config

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Session operations. Callers match them with
// errors.Is and surface them as validation messages rather than failures.
var (
	ErrDuplicateAlias = errors.New("alias already exists")
	ErrNotFound       = errors.New("host not found")
	ErrInvalidAlias   = errors.New("invalid alias")
)

// IOError wraps a config file read or write failure with the operation and
// path. The edit session state is never mutated on a path that returns one.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func newIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
