package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
	"github.com/webtodo/todo-system/internal/pkg/corrid"
)

// UserService implements the account policy rules: role plus ownership
// checks, payload shaping (no self-promotion to admin), and the optimistic
// concurrency guard on full replacement.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// SignIn verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords are indistinguishable to the caller; the real cause is
// only logged.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	l := corrid.Logger(ctx, s.log)

	user, err := s.repo.FindByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		l.Warn().Err(err).Str("username", username).Msg("sign-in failed: user lookup")
		return "", domain.ErrAuthenticationRequired
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		l.Warn().Int("user_id", user.ID).Msg("sign-in failed: password mismatch")
		return "", domain.ErrAuthenticationRequired
	}

	token, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		l.Error().Err(err).Int("user_id", user.ID).Msg("sign-in failed: token signing")
		return "", err
	}

	l.Info().Int("user_id", user.ID).Msg("signed in")
	return token, nil
}

// Register is self-registration: the record is stamped with the zero caller id.
func (s *UserService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, 0, input)
}

// Create is an authenticated create on behalf of another; the new record is
// stamped with the caller's id.
func (s *UserService) Create(ctx context.Context, caller domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, caller.ID, input)
}

func (s *UserService) create(ctx context.Context, callerID int, input ports.CreateUserInput) (*domain.User, error) {
	l := corrid.Logger(ctx, s.log)

	username := domain.NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Username uniqueness is case-insensitive: both this pre-check and the
	// unique index in the store operate on the normalized form.
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		l.Warn().Str("username", username).Msg("create user: username taken")
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
		CreatedByID:  callerID,
		UpdatedByID:  callerID,
	})
	if err != nil {
		return nil, err
	}

	l.Info().Int("user_id", created.ID).Int("created_by", callerID).Msg("user created")
	return created, nil
}

// List is admin only.
func (s *UserService) List(ctx context.Context, caller domain.Principal) ([]*domain.User, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindAll(ctx)
}

// Get allows admins to read anyone and everyone to read themselves.
func (s *UserService) Get(ctx context.Context, caller domain.Principal, id int) (*domain.User, error) {
	if !caller.IsAdmin && caller.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

// Replace is the version-guarded full replacement. A stale version is a
// conflict, distinct from any permission failure. Non-admin callers may only
// replace their own record and cannot flip the admin flag: the submitted
// value is overridden with the stored one.
func (s *UserService) Replace(ctx context.Context, caller domain.Principal, id int, input ports.ReplaceUserInput) (*domain.User, error) {
	l := corrid.Logger(ctx, s.log)

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin && caller.ID != id {
		return nil, domain.ErrForbidden
	}

	if input.Version != existing.Version {
		l.Warn().Int("user_id", id).
			Int("expected", existing.Version).
			Int("got", input.Version).
			Msg("replace user: version mismatch")
		return nil, domain.ErrVersionMismatch
	}

	isAdmin := input.IsAdmin
	if !caller.IsAdmin {
		isAdmin = existing.IsAdmin
	}

	username := domain.NormalizeUsername(input.Username)
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	if username != existing.Username {
		if _, err := s.repo.FindByUsername(ctx, username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	updated := *existing
	updated.Username = username
	updated.Email = strings.ToLower(strings.TrimSpace(input.Email))
	updated.IsAdmin = isAdmin
	updated.UpdatedAt = time.Now().UTC()
	updated.UpdatedByID = caller.ID

	// The repository re-compares the version inside the write itself, so a
	// concurrent replace between our read and this write still conflicts
	// instead of losing an update.
	replaced, err := s.repo.Replace(ctx, &updated)
	if err != nil {
		return nil, err
	}

	l.Info().Int("user_id", id).Int("version", replaced.Version).Msg("user replaced")
	return replaced, nil
}

// SetAdmin is the admin-only partial update of the admin flag. It carries no
// version check on purpose: last write wins, unlike Replace.
func (s *UserService) SetAdmin(ctx context.Context, caller domain.Principal, id int, isAdmin bool) (*domain.User, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.IsAdmin = isAdmin
	existing.UpdatedAt = time.Now().UTC()
	existing.UpdatedByID = caller.ID

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	l := corrid.Logger(ctx, s.log)
	l.Info().
		Int("user_id", id).
		Bool("is_admin", isAdmin).
		Msg("admin flag updated")
	return updated, nil
}

// Delete is admin only and returns the removed record.
func (s *UserService) Delete(ctx context.Context, caller domain.Principal, id int) (*domain.User, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	l := corrid.Logger(ctx, s.log)
	l.Info().Int("user_id", id).Msg("user deleted")
	return existing, nil
}
