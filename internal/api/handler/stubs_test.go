package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/webtodo/todo-system/internal/api/middleware"
	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

// stubUserService returns canned values; handler tests only exercise the
// transport layer, the policy itself is covered in the service package.
type stubUserService struct {
	token string
	user  *domain.User
	err   error

	lastReplace ports.ReplaceUserInput
}

func (s *stubUserService) SignIn(_ context.Context, _, _ string) (string, error) {
	return s.token, s.err
}

func (s *stubUserService) Register(_ context.Context, _ ports.CreateUserInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Create(_ context.Context, _ domain.Principal, _ ports.CreateUserInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) List(_ context.Context, _ domain.Principal) ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.User{s.user}, nil
}

func (s *stubUserService) Get(_ context.Context, _ domain.Principal, _ int) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Replace(_ context.Context, _ domain.Principal, _ int, input ports.ReplaceUserInput) (*domain.User, error) {
	s.lastReplace = input
	return s.user, s.err
}

func (s *stubUserService) SetAdmin(_ context.Context, _ domain.Principal, _ int, _ bool) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(_ context.Context, _ domain.Principal, _ int) (*domain.User, error) {
	return s.user, s.err
}

type stubTodoService struct {
	todo *domain.Todo
	err  error
}

func (s *stubTodoService) Create(_ context.Context, _ domain.Principal, _ ports.CreateTodoInput) (*domain.Todo, error) {
	return s.todo, s.err
}

func (s *stubTodoService) List(_ context.Context, _ domain.Principal) ([]*domain.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Todo{s.todo}, nil
}

func (s *stubTodoService) Get(_ context.Context, _ domain.Principal, _ int) (*domain.Todo, error) {
	return s.todo, s.err
}

func (s *stubTodoService) Update(_ context.Context, _ domain.Principal, _ int, _ ports.UpdateTodoInput) (*domain.Todo, error) {
	return s.todo, s.err
}

func (s *stubTodoService) Delete(_ context.Context, _ domain.Principal, _ int) (*domain.Todo, error) {
	return s.todo, s.err
}

// stubInvalidator records which accounts had their cached principal dropped.
type stubInvalidator struct {
	invalidated []int
}

func (s *stubInvalidator) Invalidate(_ context.Context, id int) {
	s.invalidated = append(s.invalidated, id)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func asPrincipal(c echo.Context, p domain.Principal) {
	c.Set(middleware.PrincipalKey, p)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
