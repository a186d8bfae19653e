package application

import (
	"context"
	"errors"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	"github.com/Apurer/gomitas-api/internal/domains/users/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// Service implements the user directory use cases.
type Service struct {
	uow  uow.UnitOfWork
	gate accessports.Authorizer
}

func NewService(unit uow.UnitOfWork, gate accessports.Authorizer) *Service {
	return &Service{uow: unit, gate: gate}
}

// Register adds a user. Only actors allowed to manage users may call it.
func (s *Service) Register(ctx context.Context, actor accessdomain.Actor, name, email string, role accessdomain.Role) (*domain.User, error) {
	if err := s.gate.Authorize(actor, accessdomain.UsersManage, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	user, err := domain.NewUser(name, email, role)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.User
	err = s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		created, err = repos.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EnsureUser returns the user with email, creating it when absent. Used for bootstrap and seeding.
func (s *Service) EnsureUser(ctx context.Context, name, email string, role accessdomain.Role) (*domain.User, error) {
	user, err := domain.NewUser(name, email, role)
	if err != nil {
		return nil, mapError(err)
	}
	var result *domain.User
	err = s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		existing, err := repos.Users().GetByEmail(ctx, user.Email)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		result, err = repos.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Resolve turns a caller id into an actor with its role.
func (s *Service) Resolve(ctx context.Context, id int64) (accessdomain.Actor, error) {
	if id <= 0 {
		return accessdomain.Actor{}, ports.ErrNotFound
	}
	var actor accessdomain.Actor
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		user, err := repos.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		actor = user.Actor()
		return nil
	})
	return actor, err
}

func (s *Service) List(ctx context.Context, actor accessdomain.Actor) ([]*domain.User, error) {
	if err := s.gate.Authorize(actor, accessdomain.UsersManage, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	var users []*domain.User
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		users, err = repos.Users().List(ctx)
		return err
	})
	return users, err
}

var _ ports.Service = (*Service)(nil)
