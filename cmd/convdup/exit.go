package main

import (
	"errors"
	"fmt"
)

// exitError carries a process exit code through cobra without an error
// message; the output has already been printed.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func asExitError(err error, target *exitError) bool {
	return errors.As(err, target)
}
