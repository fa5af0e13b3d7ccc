package types

import (
	"fmt"

	"github.com/google/uuid"
)

// DuplicateEntryError reports an attempt to create a second pipeline entry for
// a (candidate, job) pair that already has one. Callers should treat it as an
// "already exists" outcome, not a transient failure.
type DuplicateEntryError struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("pipeline entry already exists for candidate %s on job %s", e.CandidateID, e.JobID)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
