// Package sqlerr classifies database driver errors.
//
// It turns SQLSTATE codes from PostgreSQL into a small set of codes the
// rest of the application can switch on, and converts them into API
// errors (a not-null violation becomes a 400 with a field error, an
// unknown failure becomes a generic 500).
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a coarse classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	UndefinedFunction   Code = "undefined_function"
	UndefinedTable      Code = "undefined_table"
	ConnectionFailure   Code = "connection_failure"
)

// Severity mirrors the PostgreSQL severity field.
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

// Error is a normalised database error.
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
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42883":
		return UndefinedFunction
	case "42P01":
		return UndefinedTable
	}

	// Class 08: connection exceptions.
	if strings.HasPrefix(sqlState, "08") {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// MappingError reports that a stored procedure returned a row shape the
// record type cannot be built from.
type MappingError struct {
	Procedure string
	Expected  []string
	Got       []string
	Err       error
}

func (e *MappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapping %s result: %v", e.Procedure, e.Err)
	}
	return fmt.Sprintf("mapping %s result: expected columns [%s], got [%s]",
		e.Procedure, strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

func (e *MappingError) Unwrap() error {
	return e.Err
}
