package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var constraintColumnPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in the chain, or Other.
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

// ConvertPgError normalizes a server error.
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

// HandleError converts any repository error into an *errs.HTTPError.
// Errors that are already HTTP errors pass through untouched.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(ConvertPgError(pgErr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		var tableErr *TableError
		if errors.As(err, &tableErr) {
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName(tableErr.Table, "")), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func fromPgError(sqlErr *Error) *errs.HTTPError {
	code := errorCode(sqlErr.TableName, sqlErr.Code)
	entity := entityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(fmt.Sprintf("The referenced %s does not exist", entity), false, &code, nil, nil)

	case UniqueViolation:
		field := "identifier"
		if column := uniqueColumn(sqlErr.ConstraintName); column != "" {
			field = humanize(column)
		}
		return errs.NewBadRequestError(fmt.Sprintf("A %s with this %s already exists", entity, field), true, &code, nil, nil)

	case NotNullViolation:
		field := humanize(sqlErr.ColumnName)
		if field == "" {
			field = "field"
		}
		fieldErrors := []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}
		return errs.NewBadRequestError(fmt.Sprintf("The %s is required", field), true, &code, fieldErrors, nil)

	case CheckViolation, NumericValueOutOfRange:
		message := "One or more values do not meet required conditions"
		if field := humanize(sqlErr.ColumnName); field != "" {
			message = fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return errs.NewBadRequestError(message, true, &code, nil, nil)

	case InvalidTextRepresentation:
		return errs.NewBadRequestError("Malformed identifier or value", true, errs.Code("INVALID_INPUT"), nil, nil)

	case SerializationFailure, DeadlockDetected:
		return errs.NewConflictError("The resource was modified concurrently, please retry", true, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// errorCode builds <ENTITY>_<ACTION>, e.g. RESTAURANT_TABLE_ALREADY_EXISTS.
func errorCode(tableName string, errType Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(tableName))
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, NumericValueOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// entityName prefers a *_id column (foreign keys name the referenced
// entity) and falls back to the singular table name.
func entityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	if strings.HasSuffix(column, "_id") {
		return humanize(strings.TrimSuffix(column, "_id"))
	}
	if tableName != "" {
		return humanize(singular(tableName))
	}
	return "record"
}

func singular(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueColumn extracts the column from unique_<table>_<column> or
// <table>_<column>_key constraint names.
func uniqueColumn(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := constraintColumnPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}
