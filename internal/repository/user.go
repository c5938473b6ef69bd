package repository

import (
	"context"

	"annotapi/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	// Returns ErrDuplicate if the email is already taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by its ID, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email, or sql.ErrNoRows if absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
