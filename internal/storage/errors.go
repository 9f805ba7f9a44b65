package storage

import (
	"errors"
	"fmt"
)

// ErrConstraint matches any *ConstraintError via errors.Is
var ErrConstraint = errors.New("constraint violation")

// ConstraintKind distinguishes the storage rule that rejected a write
type ConstraintKind string

const (
	ConstraintUnique ConstraintKind = "unique"
	ConstraintCheck  ConstraintKind = "check"
)

// Named check constraints on the games table
const (
	CheckMaxParticipantsPositive = "max_participants_positive"
	CheckMinParticipantsPositive = "min_participants_positive"
	CheckMaxGteMinParticipants   = "max_gte_min_participants"
)

// ConstraintError reports a write rejected by a storage-level constraint.
// For unique violations Field is the column; for check violations Name is
// the constraint name.
type ConstraintError struct {
	Kind  ConstraintKind
	Table string
	Field string
	Name  string
	Err   error
}

// Error implements error
func (e *ConstraintError) Error() string {
	switch e.Kind {
	case ConstraintUnique:
		return fmt.Sprintf("unique constraint failed: %s.%s", e.Table, e.Field)
	default:
		return fmt.Sprintf("check constraint failed: %s", e.Name)
	}
}

// Unwrap returns the driver error, if any
func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConstraint) true for every ConstraintError
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

// NewUniqueError creates a unique constraint violation for table.field
func NewUniqueError(table, field string) *ConstraintError {
	return &ConstraintError{Kind: ConstraintUnique, Table: table, Field: field}
}

// NewCheckError creates a check constraint violation
func NewCheckError(table, name string) *ConstraintError {
	return &ConstraintError{Kind: ConstraintCheck, Table: table, Name: name}
}

// AsConstraint extracts a *ConstraintError from err
func AsConstraint(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
