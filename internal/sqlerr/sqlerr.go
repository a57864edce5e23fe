// Package sqlerr translates PostgreSQL driver errors into application errors.
//
// It maps SQLSTATE codes onto a small enum, builds machine-readable error
// codes such as HERO_ALREADY_EXISTS and phrases messages clients can read.
package sqlerr

import "fmt"

// Code is the category of a database error.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	InvalidInput        Code = "invalid_input"
	ValueTooLong        Code = "value_too_long"
	UndefinedTable      Code = "undefined_table"
	ConnectionFailure   Code = "connection_failure"
	QueryCanceled       Code = "query_canceled"
)

// pgCodes maps SQLSTATE values to a Code. Connection exceptions (class 08)
// are matched by prefix in MapCode.
var pgCodes = map[string]Code{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22P02": InvalidInput,
	"22001": ValueTooLong,
	"42P01": UndefinedTable,
	"57014": QueryCanceled,
}

// MapCode converts a SQLSTATE string into a Code.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// Severity mirrors the PostgreSQL severity levels that can reach a client.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityUnknown Severity = "UNKNOWN"
)

// MapSeverity converts the driver severity string into a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice:
		return Severity(severity)
	default:
		return SeverityUnknown
	}
}

// Error is a normalized PostgreSQL error.
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

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
