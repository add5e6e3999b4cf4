package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/webtodo/todo-system/internal/pkg/corrid"
)

func TestCorrelationID_EchoesValidHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "12345")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CorrelationID()(func(c echo.Context) error {
		if id := corrid.FromContext(c.Request().Context()); id != 12345 {
			t.Fatalf("expected corr id 12345 in context, got %d", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "12345" {
		t.Fatalf("expected header echoed, got %q", got)
	}
}

func TestCorrelationID_GeneratesWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CorrelationID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	id, err := strconv.Atoi(rec.Header().Get(HeaderCorrelationID))
	if err != nil {
		t.Fatalf("response header is not numeric: %v", err)
	}
	if id < 10000 || id > 99999 {
		t.Fatalf("generated id out of range: %d", id)
	}
}

func TestCorrelationID_GeneratesWhenInvalid(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "not-a-number")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CorrelationID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got == "not-a-number" || got == "" {
		t.Fatalf("expected a fresh id, got %q", got)
	}
}

func TestCorrelationID_SetsResponseTime(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CorrelationID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	got := rec.Header().Get(HeaderResponseTime)
	if !strings.HasSuffix(got, "ms") {
		t.Fatalf("expected duration in ms, got %q", got)
	}
}
