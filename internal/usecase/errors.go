package usecase

import (
	"errors"
	"fmt"
)

// ErrPersistence marks a failed snapshot write. The in-memory state already
// reflects the operation, so callers should surface it as a warning.
var ErrPersistence = errors.New("persistence failed")

// PersistenceError wraps the store error of a failed snapshot write.
type PersistenceError struct {
	Operation string
	Key       string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: saving %q: %v", ErrPersistence, e.Operation, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsWarning reports whether err only signals that the result was not persisted.
func IsWarning(err error) bool {
	return errors.Is(err, ErrPersistence)
}
