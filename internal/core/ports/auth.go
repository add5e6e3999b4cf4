package ports

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords with a memory-hard function.
// The cost parameters are fixed at construction and embedded in the encoded
// hash, so verification never depends on external configuration.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches the encoded hash. A malformed
	// or incompatible hash is "does not match", never an error.
	Verify(encoded, password string) bool
}

// TokenClaims is the identity carried by a verified bearer token. The subject
// binds to the account's primary key, not the username, so tokens survive
// username changes.
type TokenClaims struct {
	UserID   int
	Username string
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Sign(userID int, username string) (string, error)
	// Verify fails closed: signature mismatch, malformed structure, and
	// expiry all reject without partial trust.
	Verify(token string) (*TokenClaims, error)
}

// PrincipalDirectory resolves a token subject to a full principal record.
// Returns domain.ErrUserNotFound when the account no longer exists.
type PrincipalDirectory interface {
	Resolve(ctx context.Context, id int) (*domain.Principal, error)
}

// PrincipalInvalidator drops any cached principal for an account. Called after
// mutations that change identity or role; best effort, never fails a request.
type PrincipalInvalidator interface {
	Invalidate(ctx context.Context, id int)
}
