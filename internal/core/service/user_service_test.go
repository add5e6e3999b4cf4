package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(
		repo,
		NewPasswordService(zerolog.Nop()),
		NewTokenService("secret", time.Hour),
		zerolog.Nop(),
	)
}

var (
	admin  = domain.Principal{ID: 1, Username: "admin", IsAdmin: true}
	member = domain.Principal{ID: 2, Username: "user", IsAdmin: false}
)

func TestUserService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Register(context.Background(), ports.CreateUserInput{
		Username: "Alice123",
		Email:    "Alice@Example.com",
		Password: "pass123A$",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice123" {
		t.Fatalf("expected lowercase username, got %q", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercase email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123A$" || user.PasswordHash == "" {
		t.Fatalf("password must be hashed")
	}
	if user.IsAdmin {
		t.Fatalf("registration must not grant admin")
	}
	if user.Version != 1 {
		t.Fatalf("expected version 1, got %d", user.Version)
	}
	if user.CreatedByID != 0 || user.UpdatedByID != 0 {
		t.Fatalf("self-registration must stamp the zero caller id")
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.Register(context.Background(), ports.CreateUserInput{Username: "bob12345", Email: "b@x.ch", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// Case-insensitive match must still conflict.
	if _, err := svc.Register(context.Background(), ports.CreateUserInput{Username: "BOB12345", Email: "b2@x.ch", Password: "pw"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("conflict must not persist a partial record, have %d users", len(repo.users))
	}
}

func TestUserService_Create_StampsCaller(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Username: "carol123", Email: "c@x.ch", Password: "pw"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.CreatedByID != admin.ID || user.UpdatedByID != admin.ID {
		t.Fatalf("expected caller stamp %d, got created_by=%d updated_by=%d", admin.ID, user.CreatedByID, user.UpdatedByID)
	}
}

func TestUserService_SignIn(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.Register(context.Background(), ports.CreateUserInput{Username: "dave1234", Email: "d@x.ch", Password: "goodpass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.SignIn(context.Background(), "dave1234", "goodpass")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	// Wrong password and unknown user must be indistinguishable.
	if _, err := svc.SignIn(context.Background(), "dave1234", "badpass"); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "ghost999", "whatever"); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestUserService_List_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.List(context.Background(), member); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.CreateUserInput{Username: "someuser", Email: "s@x.ch", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	users, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUserService_Get_AdminOrSelf(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 2, "user", false)
	seedStoredUser(t, repo, 3, "other", false)

	if _, err := svc.Get(context.Background(), member, 2); err != nil {
		t.Fatalf("self read: %v", err)
	}
	if _, err := svc.Get(context.Background(), member, 3); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden reading another account, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, 3); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestUserService_Replace_VersionGuard(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 2, "user", false)

	input := ports.ReplaceUserInput{Username: "user", Email: "new@x.ch", Version: 1}
	replaced, err := svc.Replace(context.Background(), member, 2, input)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Version != 2 {
		t.Fatalf("expected version bump to 2, got %d", replaced.Version)
	}
	if replaced.UpdatedByID != member.ID {
		t.Fatalf("expected updated_by stamp %d, got %d", member.ID, replaced.UpdatedByID)
	}

	// Second replace still carrying the original version must conflict.
	if _, err := svc.Replace(context.Background(), member, 2, input); !errors.Is(err, domain.ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch on stale version, got %v", err)
	}
}

func TestUserService_Replace_NoSelfPromotion(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 2, "user", false)

	replaced, err := svc.Replace(context.Background(), member, 2, ports.ReplaceUserInput{
		Username: "user",
		Email:    "u@x.ch",
		IsAdmin:  true, // ignored for non-admin callers
		Version:  1,
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.IsAdmin {
		t.Fatalf("non-admin must not be able to grant itself admin")
	}

	// An admin may flip the flag through replace.
	promoted, err := svc.Replace(context.Background(), admin, 2, ports.ReplaceUserInput{
		Username: "user",
		Email:    "u@x.ch",
		IsAdmin:  true,
		Version:  2,
	})
	if err != nil {
		t.Fatalf("admin replace: %v", err)
	}
	if !promoted.IsAdmin {
		t.Fatalf("admin replace should apply the admin flag")
	}
}

func TestUserService_Replace_Permissions(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 3, "other", false)

	if _, err := svc.Replace(context.Background(), member, 3, ports.ReplaceUserInput{Username: "other", Version: 1}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden replacing another account, got %v", err)
	}
	if _, err := svc.Replace(context.Background(), admin, 99, ports.ReplaceUserInput{Username: "x", Version: 1}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SetAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 2, "user", false)

	if _, err := svc.SetAdmin(context.Background(), member, 2, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	updated, err := svc.SetAdmin(context.Background(), admin, 2, true)
	if err != nil {
		t.Fatalf("set admin: %v", err)
	}
	if !updated.IsAdmin {
		t.Fatalf("expected admin flag set")
	}
	if updated.UpdatedByID != admin.ID {
		t.Fatalf("expected updated_by stamp %d, got %d", admin.ID, updated.UpdatedByID)
	}
	// Unlike replace, the admin-flag path never touches the version.
	if updated.Version != 1 {
		t.Fatalf("admin update must not bump the version, got %d", updated.Version)
	}
}

func TestUserService_Delete_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	seedStoredUser(t, repo, 2, "user", false)

	if _, err := svc.Delete(context.Background(), member, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	deleted, err := svc.Delete(context.Background(), admin, 2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != 2 {
		t.Fatalf("expected deleted record, got %+v", deleted)
	}
	if _, err := svc.Delete(context.Background(), admin, 2); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

// seedStoredUser inserts an account directly into the stub with version 1.
func seedStoredUser(t *testing.T, repo *stubUserRepo, id int, username string, isAdmin bool) {
	t.Helper()
	now := time.Now().UTC()
	if _, err := repo.Create(context.Background(), &domain.User{
		ID:        id,
		Username:  username,
		Email:     username + "@local.test",
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}); err != nil {
		t.Fatalf("seed user %d: %v", id, err)
	}
}
