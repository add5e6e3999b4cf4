package ports

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create an account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// ReplaceUserInput is the full-replacement payload. Version must equal the
// stored version at the moment of write; a mismatch is a conflict, not a
// permission failure.
type ReplaceUserInput struct {
	Username string
	Email    string
	IsAdmin  bool
	Version  int
}

// UserService defines use-case operations for accounts. Every method takes
// the resolved caller principal explicitly; nothing is pulled from ambient
// request state.
type UserService interface {
	// SignIn verifies credentials and returns a bearer token. All failures
	// (unknown username, wrong password) surface as
	// domain.ErrAuthenticationRequired; the cause is only logged.
	SignIn(ctx context.Context, username, password string) (string, error)

	// Register is self-registration: the created record is stamped with the
	// zero caller id.
	Register(ctx context.Context, input CreateUserInput) (*domain.User, error)

	Create(ctx context.Context, caller domain.Principal, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context, caller domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, caller domain.Principal, id int) (*domain.User, error)
	Replace(ctx context.Context, caller domain.Principal, id int, input ReplaceUserInput) (*domain.User, error)
	// SetAdmin is the admin-only partial update. It deliberately carries no
	// version check: last write wins, unlike Replace.
	SetAdmin(ctx context.Context, caller domain.Principal, id int, isAdmin bool) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Principal, id int) (*domain.User, error)
}
