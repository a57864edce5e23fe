package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/heroes/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code carried by err, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds <DOMAIN>_<ACTION> codes from the table name:
//
//	hero + UniqueViolation => HERO_ALREADY_EXISTS
func generateErrorCode(tableName string, code Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(tableName))
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidInput, ValueTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage phrases a constraint failure for API clients.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation, InvalidInput, ValueTooLong:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// getEntityName infers what a failing row represents: the base of an
// "<entity>_id" column first, then the table name.
func getEntityName(tableName, columnName string) string {
	if base, ok := strings.CutSuffix(strings.ToLower(columnName), "_id"); ok && base != "" {
		return humanizeText(base)
	}
	if tableName != "" {
		return humanizeText(singular(tableName))
	}
	return "record"
}

// humanizeText converts snake_case into Title Case: "secret_name" -> "Secret Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
// Storage failures are server errors: every PostgreSQL error becomes a 500.
// Constraint violations keep a descriptive code and message so the failure
// stays diagnosable from the response; anything else is a generic 500.
// Missing rows map to 404.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)

		internal := errs.NewInternalServerError()
		switch sqlErr.Code {
		case UniqueViolation, ForeignKeyViolation, NotNullViolation, CheckViolation, InvalidInput, ValueTooLong:
			internal.Code = generateErrorCode(sqlErr.TableName, sqlErr.Code)
			internal.Message = formatUserFriendlyMessage(sqlErr)
		}
		return internal
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
