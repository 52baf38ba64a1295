package main

import "errors"

// exitError makes the command fail with status 1 without printing anything;
// the reason was already reported as diagnostics.
type exitError struct {
	reason string
}

func (e exitError) Error() string { return e.reason }

func asExitError(err error, target *exitError) bool {
	return errors.As(err, target)
}
