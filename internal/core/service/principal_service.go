package service

import (
	"context"

	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

// PrincipalService resolves token subjects against the account store. It is
// the source of truth behind any caching layer the auth gate sits on.
type PrincipalService struct {
	users ports.UserRepository
}

func NewPrincipalService(users ports.UserRepository) *PrincipalService {
	return &PrincipalService{users: users}
}

func (s *PrincipalService) Resolve(ctx context.Context, id int) (*domain.Principal, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := user.Principal()
	return &p, nil
}
