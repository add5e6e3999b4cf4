package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"authentication required", domain.ErrAuthenticationRequired, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"todo not found", domain.ErrTodoNotFound, http.StatusNotFound},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"version mismatch", domain.ErrVersionMismatch, http.StatusConflict},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := invokeErrorHandler(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body.Error == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error != "invalid payload" {
		t.Fatalf("expected message preserved, got %q", body.Error)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := invokeErrorHandler(t, errors.New("mongo exploded"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// The real cause must not leak to the client.
	if body.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	rec, _ := invokeErrorHandler(t, errors.Join(errors.New("context"), domain.ErrVersionMismatch))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for wrapped conflict, got %d", rec.Code)
	}
}
