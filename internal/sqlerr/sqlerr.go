// Package sqlerr classifies database driver errors.
//
// It converts pgconn errors (SQLSTATE codes, constraint metadata) and the
// no-rows sentinels from pgx/database-sql into the application error envelope,
// so repositories can return driver errors as-is and the boundary still speaks
// the errs taxonomy.
package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code is the application-level category of a database error.
type Code string

const (
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	Other               Code = "other"
)

// SQLSTATE class 23 codes we care about.
const (
	stateForeignKeyViolation = "23503"
	stateUniqueViolation     = "23505"
	stateNotNullViolation    = "23502"
	stateCheckViolation      = "23514"
)

// Error is a normalized database error carrying the metadata needed to build
// client-facing messages. It wraps the originating driver error.
type Error struct {
	Code           Code
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a raw SQLSTATE onto the Code enum.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case stateForeignKeyViolation:
		return ForeignKeyViolation
	case stateUniqueViolation:
		return UniqueViolation
	case stateNotNullViolation:
		return NotNullViolation
	case stateCheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// ConvertPgError normalizes a raw Postgres error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
