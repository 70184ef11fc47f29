package core

import "fmt"

// ValidationError represents a malformed record on create or update.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a reference to a nonexistent record.
type NotFoundError struct {
	Kind string // "requirement" or "capability"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// LinkIntegrityError represents a capability link that would dangle.
type LinkIntegrityError struct {
	RequirementID string
	CapabilityID  string
	Message       string
}

func (e *LinkIntegrityError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("link %s -> %s: %s", e.RequirementID, e.CapabilityID, e.Message)
	}
	return fmt.Sprintf("requirement %s references unknown capability %s", e.RequirementID, e.CapabilityID)
}

// ImportRowError represents a single rejected CSV row. Row numbers are
// 1-based over data rows (the header is row 0).
type ImportRowError struct {
	Row    int
	Reason string
}

func (e *ImportRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// PersistenceWarning represents a storage read/write failure. It is
// non-fatal: in-memory state is the authority and is never rolled back.
type PersistenceWarning struct {
	Operation string // "load", "save", or "delete"
	Key       string
	Err       error
}

func (e *PersistenceWarning) Error() string {
	return fmt.Sprintf("persistence %s %s: %v", e.Operation, e.Key, e.Err)
}

func (e *PersistenceWarning) Unwrap() error {
	return e.Err
}
