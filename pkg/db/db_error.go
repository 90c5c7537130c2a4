package db

import (
	"fmt"
	"strings"
)

// ErrInvalidDB : Indicates that an operation was attempted on a
// `DB`/`Proxy` that has no established connection pool.
var ErrInvalidDB = fmt.Errorf("invalid or disconnected database")

// ErrInvalidQuery : Indicates that a `QueryDesc` is missing its
// mandatory properties or table.
var ErrInvalidQuery = fmt.Errorf("invalid query description")

// ErrInvalidData : Indicates that an argument provided to
// `InsertToDB` could not be marshalled for the insertion script.
var ErrInvalidData = fmt.Errorf("invalid data for insertion")

// ErrDuplicatedElement : Indicates that an insertion failed
// because of a unique constraint violation.
var ErrDuplicatedElement = fmt.Errorf("duplicated element")

// ErrForeignKeyViolation : Indicates that an insertion failed
// because of a foreign key constraint violation.
var ErrForeignKeyViolation = fmt.Errorf("foreign key violation")

// formatDBError :
// Used to translate a raw error returned by the underlying `pgx`
// driver into one of the sentinel errors of this package when
// possible, so that callers can use `errors.Is` rather than
// string-matching SQL state codes themselves.
//
// The `err` defines the raw error to translate, which may be
// `nil`.
//
// Returns `nil` if `err` is `nil`, one of the sentinel errors
// above if the error could be classified, or `err` unchanged
// otherwise.
func formatDBError(err error) error {
	if err == nil {
		return nil
	}

	switch GetSQLErrorCode(err.Error()) {
	case DuplicatedElement:
		return ErrDuplicatedElement
	case ForeignKeyViolation:
		return ErrForeignKeyViolation
	default:
		return err
	}
}

// ErrorType :
// Defines some convenience named values for common SQL
// errors.
type ErrorType int

// Defines the possible named SQL errors.
const (
	DuplicatedElement ErrorType = iota
	ForeignKeyViolation
	Unknown
)

// getDuplicatedElementErrorKey :
// Used to retrieve a string describing part of the error
// message issued by the database when trying to insert a
// duplicated element on a unique column. Can be used to
// standardize the definition of this error.
//
// Return part of the error string issued when inserting
// an already existing key.
func getDuplicatedElementErrorKey() string {
	return "SQLSTATE 23505"
}

// getForeignKeyViolationErrorKey :
// Used to retrieve a string describing part of the error
// message issued by the database when trying to insert an
// element that does not match a foreign key constraint.
// Can be used to standardize the definition of this error.
//
// Return part of the error string issued when violating a
// foreign key constraint.
func getForeignKeyViolationErrorKey() string {
	return "SQLSTATE 23503"
}

// GetSQLErrorCode :
// Performs an analysis of the input error string to extract
// a named error code if possible. In case the error does not
// seem to match anything known, the `Unknown` code is sent
// back.
//
// The `errStr` defines the error message to analyze.
//
// Returns the error code for this error or `Unknown` if it
// does not match any known error.
func GetSQLErrorCode(errStr string) ErrorType {
	// Check for all known keys.
	if strings.Contains(errStr, getDuplicatedElementErrorKey()) {
		return DuplicatedElement
	}

	if strings.Contains(errStr, getForeignKeyViolationErrorKey()) {
		return ForeignKeyViolation
	}

	return Unknown
}
