package task

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no task with the requested ID exists.
var ErrNotFound = errors.New("task not found")

// ValidationError indicates a required field is missing or malformed.
// Validation failures propagate to the caller; the UI layer owns the
// user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task: %s %s", e.Field, e.Reason)
}

// StorageError wraps a blob read/write failure. Storage errors are
// contained by the registry and never block task CRUD.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
