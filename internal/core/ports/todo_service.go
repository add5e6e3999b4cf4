package ports

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// CreateTodoInput carries the data for a new todo. The owner is always the
// caller; there is no way to create on behalf of someone else.
type CreateTodoInput struct {
	Title       string
	Description string
}

// UpdateTodoInput is a partial update. Nil fields are left untouched.
// Non-admin callers may only submit IsClosed=true on their own open todos;
// anything else is forbidden.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	IsClosed    *bool
}

// TodoService defines use-case operations for todo items.
type TodoService interface {
	Create(ctx context.Context, caller domain.Principal, input CreateTodoInput) (*domain.Todo, error)
	// List returns all todos for admins; for everyone else only the caller's
	// own open items.
	List(ctx context.Context, caller domain.Principal) ([]*domain.Todo, error)
	Get(ctx context.Context, caller domain.Principal, id int) (*domain.Todo, error)
	Update(ctx context.Context, caller domain.Principal, id int, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, caller domain.Principal, id int) (*domain.Todo, error)
}
