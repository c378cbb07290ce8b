package sqlite

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates a missing run.
	ErrNotFound = errors.New("not found")
	// ErrRunExists indicates a run id that was already exported.
	ErrRunExists = errors.New("run already exported")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
