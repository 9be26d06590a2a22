// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every statement is parameterized. Each call checks a connection out of
// the pool and returns it before the call returns; multi-statement writes
// run in a single transaction.
package repository

import (
	"errors"
	"fmt"

	"github.com/deppfellow/job-board/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned by lookups and updates that match no row.
	ErrNotFound = errors.New("record not found")

	// ErrConflict matches every *ConflictError through errors.Is.
	ErrConflict = errors.New("record already exists")
)

// ConflictError reports a unique constraint violation. Field is the column
// inferred from the constraint name ("name", "email"), or "pair" for a
// duplicate junction row.
type ConflictError struct {
	Table      string
	Field      string
	Constraint string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Table, ErrConflict)
	}
	return fmt.Sprintf("%s.%s: %s", e.Table, e.Field, ErrConflict)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ReferenceError reports a reference-table label that does not exist.
type ReferenceError struct {
	Table string
	Label string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s label %q", e.Table, e.Label)
}

// translateError maps driver errors onto the repository error kinds.
// table names the statement's target and is used when the driver does not
// report one.
func translateError(err error, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if sqlErr, ok := sqlerr.AsError(err); ok && sqlErr.Code == sqlerr.UniqueViolation {
		conflict := &ConflictError{
			Table:      sqlErr.TableName,
			Field:      sqlerr.UniqueViolationColumn(sqlErr.ConstraintName),
			Constraint: sqlErr.ConstraintName,
		}
		if conflict.Table == "" {
			conflict.Table = table
		}
		return conflict
	}

	return err
}
