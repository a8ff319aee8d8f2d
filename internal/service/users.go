package service

import (
	"context"
	"errors"

	"usercrud/internal/models"
	"usercrud/internal/repository"
)

// ErrUserNotFound is returned by Get when no row matches the identifier.
var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// Get returns the user with the given id or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

func (s *UserService) Create(ctx context.Context, in models.UserInput) ([]models.User, error) {
	if _, err := s.userRepo.Create(ctx, in); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, in models.UserInput) ([]models.User, error) {
	if err := s.userRepo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) ([]models.User, error) {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}
