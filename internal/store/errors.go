package store

import (
	"errors"
	"fmt"
)

// Operations reported by ErrPersistence.
const (
	OpLoad   = "load"
	OpSave   = "save"
	OpUpdate = "update"
	OpList   = "list"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate row")

// ErrPersistence wraps a storage failure seen by a service, naming the
// entity and the operation that failed.
type ErrPersistence struct {
	Entity string
	Op     string
	Err    error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Entity, e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}
