package assessment

import "github.com/abhisek/prepcoach/internal/store"

// Persistence operations reported by ErrPersistence.
const (
	OpSave = store.OpSave
	OpList = store.OpList
)

// ErrPersistence wraps a storage failure while saving or listing
// assessments. Entity is always "assessment".
type ErrPersistence = store.ErrPersistence

func persistenceErr(op string, err error) error {
	return &ErrPersistence{Entity: "assessment", Op: op, Err: err}
}
