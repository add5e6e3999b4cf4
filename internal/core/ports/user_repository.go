package ports

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new account. When user.ID is zero, the repository
	// allocates the next integer id; a non-zero id is honoured (seed data).
	// Returns domain.ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)

	// Replace persists a full overwrite guarded by user.Version: the write
	// only applies when the stored version still equals user.Version, and it
	// increments the version in the same operation. Returns
	// domain.ErrVersionMismatch when the record exists at another version and
	// domain.ErrUserNotFound when it does not exist at all.
	Replace(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update overwrites mutable fields unconditionally (last write wins).
	// It never touches the version column.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	Delete(ctx context.Context, id int) error
}
