package service

import (
	"github.com/deppfellow/restaurant-backend/internal/errs"
)

// errBadField is a 400 pointing at a single input field.
func errBadField(field, message string) *errs.HTTPError {
	return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: field, Error: message}}, nil)
}

// errRule is a 400 for a business rule the client can act on.
func errRule(code, message string) *errs.HTTPError {
	return errs.NewBadRequestError(message, true, errs.Code(code), nil, nil)
}
