// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from pgx into a small set of categories and
// converts them into user-friendly application errors (e.g. a unique
// violation becomes "A Company with this Email already exists").
package sqlerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a database-independent error category.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	ExclusionViolation   Code = "exclusion_violation"
	StringDataTruncation Code = "string_data_right_truncation"
	InvalidTextRep       Code = "invalid_text_representation"
	UndefinedTable       Code = "undefined_table"
	UndefinedColumn      Code = "undefined_column"
	SerializationFailure Code = "serialization_failure"
	DeadlockDetected     Code = "deadlock_detected"
	ConnectionException  Code = "connection_exception"
)

// SQLSTATE values, see https://www.postgresql.org/docs/current/errcodes-appendix.html
var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringDataTruncation,
	"22P02": InvalidTextRep,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"08000": ConnectionException,
	"08003": ConnectionException,
	"08006": ConnectionException,
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the raw severity string onto a Severity, treating
// anything unknown as an error.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// AsError extracts a normalized *Error from anywhere in err's chain,
// converting a raw *pgconn.PgError when needed.
func AsError(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr), true
	}

	return nil, false
}
