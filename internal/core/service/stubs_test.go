package service

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	clone := cloneUser(user)
	if clone.ID == 0 {
		for r.users[r.nextID] != nil {
			r.nextID++
		}
		clone.ID = r.nextID
		r.nextID++
	}
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// Replace mirrors the Mongo repository: the write only applies when the
// stored version still matches, and the version increments with it.
func (r *stubUserRepo) Replace(_ context.Context, user *domain.User) (*domain.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if stored.Version != user.Version {
		return nil, domain.ErrVersionMismatch
	}
	clone := cloneUser(user)
	clone.Version++
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := cloneUser(user)
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTodoRepo struct {
	todos  map[int]*domain.Todo
	nextID int
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int]*domain.Todo), nextID: 1}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	clone := cloneTodo(todo)
	if clone.ID == 0 {
		for r.todos[r.nextID] != nil {
			r.nextID++
		}
		clone.ID = r.nextID
		r.nextID++
	}
	r.todos[clone.ID] = cloneTodo(clone)
	return clone, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) FindAll(_ context.Context) ([]*domain.Todo, error) {
	out := make([]*domain.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		out = append(out, cloneTodo(t))
	}
	return out, nil
}

func (r *stubTodoRepo) FindOpenByOwner(_ context.Context, ownerID int) ([]*domain.Todo, error) {
	var out []*domain.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID && !t.IsClosed {
			out = append(out, cloneTodo(t))
		}
	}
	return out, nil
}

func (r *stubTodoRepo) Update(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if _, ok := r.todos[todo.ID]; !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := cloneTodo(todo)
	r.todos[clone.ID] = cloneTodo(clone)
	return clone, nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.todos)), nil
}
