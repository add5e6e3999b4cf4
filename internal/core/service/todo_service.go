package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
	"github.com/webtodo/todo-system/internal/pkg/corrid"
)

// TodoService implements the todo policy rules. The business state machine is
// deliberately asymmetric: owners may only close (false → true), admins own
// the full lifecycle including reopening, and closed items disappear from
// their owner's view entirely.
type TodoService struct {
	repo ports.TodoRepository
	log  zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, log zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, log: log}
}

// Create is allowed for every authenticated caller; the caller becomes the
// owner and there is no way to create on behalf of someone else.
func (s *TodoService) Create(ctx context.Context, caller domain.Principal, input ports.CreateTodoInput) (*domain.Todo, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Todo{
		OwnerID:     caller.ID,
		Title:       input.Title,
		Description: input.Description,
		IsClosed:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: caller.ID,
		UpdatedByID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	l := corrid.Logger(ctx, s.log)
	l.Info().
		Int("todo_id", created.ID).
		Int("owner_id", caller.ID).
		Msg("todo created")
	return created, nil
}

// List returns all todos for admins; for everyone else only the caller's own
// open items.
func (s *TodoService) List(ctx context.Context, caller domain.Principal) ([]*domain.Todo, error) {
	if caller.IsAdmin {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindOpenByOwner(ctx, caller.ID)
}

// Get keeps not-found and forbidden distinguishable: a nonexistent id is
// not-found for everyone, an existing but disallowed id is forbidden.
func (s *TodoService) Get(ctx context.Context, caller domain.Principal, id int) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.VisibleTo(caller) {
		return nil, domain.ErrForbidden
	}
	return todo, nil
}

// Update applies the role-specific rules. Non-admin owners may submit exactly
// one change: IsClosed=true. Touching any other field, reopening, or sending
// an explicit false is forbidden; admins may change everything.
func (s *TodoService) Update(ctx context.Context, caller domain.Principal, id int, input ports.UpdateTodoInput) (*domain.Todo, error) {
	l := corrid.Logger(ctx, s.log)

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin {
		if input.Title != nil {
			todo.Title = *input.Title
		}
		if input.Description != nil {
			todo.Description = *input.Description
		}
		if input.IsClosed != nil {
			todo.IsClosed = *input.IsClosed
		}
	} else {
		if todo.OwnerID != caller.ID {
			return nil, domain.ErrForbidden
		}
		if input.Title != nil || input.Description != nil {
			l.Warn().Int("todo_id", id).Msg("update todo: non-admin field change rejected")
			return nil, domain.ErrForbidden
		}
		if input.IsClosed == nil || !*input.IsClosed {
			l.Warn().Int("todo_id", id).Msg("update todo: only closing is permitted")
			return nil, domain.ErrForbidden
		}
		todo.IsClosed = true
	}

	todo.UpdatedAt = time.Now().UTC()
	todo.UpdatedByID = caller.ID

	// Last write wins: todo updates are intentionally not version-guarded.
	updated, err := s.repo.Update(ctx, todo)
	if err != nil {
		return nil, err
	}

	l.Info().Int("todo_id", id).Bool("is_closed", updated.IsClosed).Msg("todo updated")
	return updated, nil
}

// Delete is admin only and returns the removed item.
func (s *TodoService) Delete(ctx context.Context, caller domain.Principal, id int) (*domain.Todo, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	l := corrid.Logger(ctx, s.log)
	l.Info().Int("todo_id", id).Msg("todo deleted")
	return todo, nil
}
