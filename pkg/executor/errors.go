package executor

import (
	"errors"
	"fmt"
)

// ErrStart is wrapped by Execute when the command could not be launched at
// all (binary missing, not executable, bad path).
var ErrStart = errors.New("could not be started")

// ExitError is returned by Execute when the command ran and exited with a
// non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Stderr string

	err error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' exited with status %d\nstderr: %s", e.Name, e.Code, e.Stderr)
	}
	return fmt.Sprintf("command '%s' exited with status %d", e.Name, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}
