package repository

import (
	"context"

	"usercrud/internal/models"

	"github.com/jmoiron/sqlx"
)

// UserRepo is the persistence contract for the users table. Identifiers are
// passed through as received; the storage engine decides how they compare.
type UserRepo interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (int64, error)
	Update(ctx context.Context, id string, in models.UserInput) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users UserRepo
	db    *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		db:    db,
	}
}

// Ping checks that the underlying database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
