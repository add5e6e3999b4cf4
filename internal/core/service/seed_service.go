package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

// SeedService populates demo data after bootstrap: two well-known accounts
// (admin/admin and user/user) and four example todos. Existing records are
// never touched.
type SeedService struct {
	users  ports.UserRepository
	todos  ports.TodoRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewSeedService(users ports.UserRepository, todos ports.TodoRepository, hasher ports.PasswordHasher, log zerolog.Logger) *SeedService {
	return &SeedService{users: users, todos: todos, hasher: hasher, log: log}
}

func (s *SeedService) Run(ctx context.Context) error {
	if err := s.ensureUser(ctx, 1, "admin", true); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.ensureUser(ctx, 2, "user", false); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if err := s.seedTodos(ctx); err != nil {
		return fmt.Errorf("seed todos: %w", err)
	}
	return nil
}

// ensureUser inserts the account with a fixed id when absent. The demo
// password equals the username.
func (s *SeedService) ensureUser(ctx context.Context, id int, username string, isAdmin bool) error {
	if _, err := s.users.FindByID(ctx, id); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(username)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@local.test",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	})
	if err != nil {
		return err
	}

	s.log.Debug().Int("user_id", id).Str("username", username).Bool("is_admin", isAdmin).Msg("seeded user")
	return nil
}

func (s *SeedService) seedTodos(ctx context.Context) error {
	count, err := s.todos.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug().Int64("count", count).Msg("todos already exist, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	demo := []domain.Todo{
		{ID: 1, OwnerID: 1, Title: "Open admin", Description: "Example of an open admin todo", IsClosed: false},
		{ID: 2, OwnerID: 1, Title: "Closed admin", Description: "Example of a closed admin todo", IsClosed: true},
		{ID: 3, OwnerID: 2, Title: "Open user", Description: "Example of an open user todo", IsClosed: false},
		{ID: 4, OwnerID: 2, Title: "Closed user", Description: "Example of a closed user todo", IsClosed: true},
	}

	for i := range demo {
		t := demo[i]
		t.CreatedAt = now
		t.UpdatedAt = now
		t.CreatedByID = t.OwnerID
		t.UpdatedByID = t.OwnerID
		if _, err := s.todos.Create(ctx, &t); err != nil {
			return err
		}
	}

	s.log.Debug().Int("count", len(demo)).Msg("seeded todos")
	return nil
}
