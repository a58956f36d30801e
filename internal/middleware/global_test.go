package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/labstack/echo/v4"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantHidden  string
		wantOverrid bool
	}{
		{
			name:        "http error passes through",
			err:         errs.NewBadRequestError("Party too large", true, errs.Code("TOO_LARGE"), nil, nil),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "TOO_LARGE",
			wantOverrid: true,
		},
		{
			name:       "echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("dial tcp 10.0.0.1:5432: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantHidden: "10.0.0.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewGlobalMiddlewares(testServer()).GlobalErrorHandler(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body errs.HTTPError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.wantCode || body.Status != tc.wantStatus || body.Override != tc.wantOverrid {
				t.Fatalf("unexpected body %+v", body)
			}
			if tc.wantHidden != "" && strings.Contains(rec.Body.String(), tc.wantHidden) {
				t.Fatalf("response leaked the cause: %s", rec.Body.String())
			}
		})
	}
}

func TestRequestIDReusesHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected request id to be reused, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(rec.Body.String()) != 36 {
		t.Fatalf("expected generated uuid, got %q", rec.Body.String())
	}
}
