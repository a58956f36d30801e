package service

import (
	"errors"
	"testing"

	"github.com/deppfellow/restaurant-backend/internal/errs"
)

func assertHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, httpErr.Status, httpErr.Message)
	}
	if code != "" && httpErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, httpErr.Code)
	}
	return httpErr
}
