package postgres

import (
	"context"
	"database/sql"

	"annotapi/internal/model"
	"annotapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
// A unique-violation on the email column is mapped to repository.ErrDuplicate.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, created_at
	`
	row := r.db.QueryRowContext(ctx, q, u.ID, u.Username, u.Email, u.CreatedAt)

	var out model.User
	if err := row.Scan(&out.ID, &out.Username, &out.Email, &out.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, username, email, created_at
		FROM users
		WHERE id = $1
	`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, username, email, created_at
		FROM users
		WHERE email = $1
	`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
