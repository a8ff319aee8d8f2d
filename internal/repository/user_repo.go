package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"usercrud/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email"}

// userRow tolerates NULL name/email left by rows written outside this app.
type userRow struct {
	ID    int64          `db:"id"`
	Name  sql.NullString `db:"name"`
	Email sql.NullString `db:"email"`
}

func (r userRow) toModel() models.User {
	return models.User{ID: r.ID, Name: r.Name.String, Email: r.Email.String}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserRepository)(nil)

// List returns every row ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query, args, err := sq.Select(userColumns...).
		From(usersTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query, args, err := sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", id, err)
	}
	u := row.toModel()
	return &u, nil
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, in models.UserInput) (int64, error) {
	query, args, err := sq.Insert(usersTable).
		Columns("name", "email").
		Values(in.Name, in.Email).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert user query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", in.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", in.Name, err)
	}
	return lastID, nil
}

// Update overwrites name and email of the matching row. No matching row is not an error.
func (r *UserRepository) Update(ctx context.Context, id string, in models.UserInput) error {
	query, args, err := sq.Update(usersTable).
		Set("name", in.Name).
		Set("email", in.Email).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user %q: %w", id, err)
	}
	return nil
}

// Delete removes the matching row. No matching row is not an error.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user %q: %w", id, err)
	}
	return nil
}
