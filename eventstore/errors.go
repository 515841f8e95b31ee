package eventstore

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateId matches a WriteError caused by an event ID that is already
// stored.
var ErrDuplicateId = errors.New("duplicate event id")

// ErrMalformedTimestamp is wrapped by the ReadError returned for a stored row
// whose date cannot be decoded.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// SchemaError is returned when the event table could not be bootstrapped.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: failed to create table %s: %v", e.Op, tableName, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// WriteError is returned when an event could not be inserted. Nothing is
// written when it is returned.
type WriteError struct {
	Op        string
	Id        int
	Duplicate bool
	Err       error
}

func (e *WriteError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s: event with ID %d already exists: %v", e.Op, e.Id, e.Err)
	}
	return fmt.Sprintf("%s: failed to write event %d: %v", e.Op, e.Id, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == ErrDuplicateId && e.Duplicate
}

// ReadError is returned when a query fails or a stored row cannot be decoded.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: failed to read %s: %v", e.Op, tableName, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// isDuplicateKey reports whether err is a primary key or unique constraint
// violation from one of the supported drivers.
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
