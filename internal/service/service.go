package service

import (
	"context"

	"usercrud/internal/models"
	"usercrud/internal/repository"
)

// Users exposes the user CRUD operations. Every mutation returns the table
// as read back immediately after the mutating statement.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, in models.UserInput) ([]models.User, error)
	Update(ctx context.Context, id string, in models.UserInput) ([]models.User, error)
	Delete(ctx context.Context, id string) ([]models.User, error)
}

// Health reports whether the storage backend is reachable.
type Health interface {
	Ping(ctx context.Context) error
}

type Service struct {
	Users
	Health
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Users:  NewUserService(repos.Users),
		Health: repos,
	}
}
