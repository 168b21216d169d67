package services

import (
	"context"
	"errors"
	"fmt"

	"chat-app/session-service/internal/domain"
	userRepository "chat-app/session-service/internal/repository/user"
)

type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	Update(ctx context.Context, caller domain.Identity, id string, fields domain.UserUpdate) (*domain.PublicUser, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}

type UserServiceImpl struct {
	users userRepository.UserRepository
}

func NewUserService(users userRepository.UserRepository) UserService {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	pub := user.Public()
	return &pub, nil
}

// Update and Delete check ownership before touching the store, so a
// cross-user request is refused whether or not the target exists. A missing
// target surfaces as domain.ErrNotFound from the store's own write.
func (s *UserServiceImpl) Update(ctx context.Context, caller domain.Identity, id string, fields domain.UserUpdate) (*domain.PublicUser, error) {
	if err := CheckOwnership(caller, id); err != nil {
		return nil, err
	}
	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, storageErr(err)
	}
	pub := user.Public()
	return &pub, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := CheckOwnership(caller, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
	return nil
}

// storageErr passes ErrNotFound through and marks everything else as a
// storage failure, keeping the cause for server-side logs.
func storageErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
