package ports

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// TodoRepository defines persistence operations for todo items.
// Todos carry no version column: concurrent updates to the same item are
// last write wins by design.
type TodoRepository interface {
	// Create inserts a new todo. When todo.ID is zero the repository
	// allocates the next integer id; a non-zero id is honoured (seed data).
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)

	FindByID(ctx context.Context, id int) (*domain.Todo, error)
	FindAll(ctx context.Context) ([]*domain.Todo, error)
	// FindOpenByOwner returns the caller-visible subset for non-admin lists:
	// owned by ownerID and not closed.
	FindOpenByOwner(ctx context.Context, ownerID int) ([]*domain.Todo, error)

	Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}
