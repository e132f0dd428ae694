package fluentpg

import (
	"errors"
	"fmt"
)

// Sentinel errors for go-fluent-pg.
// These errors can be checked using errors.Is().
var (
	// ErrNoConnection is returned when a terminal operation runs on a builder
	// that was created without a database handle.
	ErrNoConnection = errors.New("fluentpg: no database connection configured")

	// ErrNoTable is returned when a query is executed without specifying a table.
	ErrNoTable = errors.New("fluentpg: no table specified")

	// ErrNoWhere is returned when Update or Delete is called without at least
	// one WHERE condition. Unconditional mass writes are never permitted.
	ErrNoWhere = errors.New("fluentpg: update/delete requires at least one where condition")

	// ErrEmptyInsert is returned when Insert is called with a nil or empty
	// row list, or with a row that has no columns.
	ErrEmptyInsert = errors.New("fluentpg: insert requires a non-empty list of rows")

	// ErrNoColumns is returned when an update payload has no columns.
	ErrNoColumns = errors.New("fluentpg: no columns specified")

	// ErrInvalidDirection is returned when OrderBy receives a direction other
	// than ASC or DESC (case-insensitive).
	ErrInvalidDirection = errors.New("fluentpg: order direction must be ASC or DESC")

	// ErrMissingFieldSpec is returned when a FieldSpec lacks a name or a type.
	ErrMissingFieldSpec = errors.New("fluentpg: field spec requires name and type")

	// ErrRecoveryFailed is returned when the missing-database recovery
	// sequence itself fails. The original driver error is wrapped.
	ErrRecoveryFailed = errors.New("fluentpg: database recovery failed")
)

// QueryError wraps a driver error with the statement that produced it.
type QueryError struct {
	Err     error
	Query   string
	Message string
}

func (e *QueryError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError with context.
func NewQueryError(err error, query, message string) *QueryError {
	return &QueryError{
		Err:     err,
		Query:   query,
		Message: message,
	}
}

// WrapError annotates err with the operation that failed.
func WrapError(op string, err error) error {
	return fmt.Errorf("fluentpg: %s: %w", op, err)
}
