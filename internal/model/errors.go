package model

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures to open, read or write a parameter file.
	ErrIO = errors.New("model: i/o failure")
	// ErrFormat marks a parameter file holding something other than numbers.
	ErrFormat = errors.New("model: malformed parameter file")
	// ErrShape marks vectors or shapes that do not fit the network.
	ErrShape = errors.New("model: shape mismatch")
)

// IOError records the file operation that failed. It matches ErrIO as well
// as the underlying error under errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
