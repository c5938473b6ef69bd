package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"annotapi/internal/model"
	"annotapi/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailExists      = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
)

// UserService defines the identity use cases. There is no credential
// handling: login is an email lookup against registered users.
type UserService interface {
	// Register creates a user with a unique email.
	Register(ctx context.Context, username, email string) (*model.User, error)

	// Login returns the user registered under email.
	Login(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, username, email string) (*model.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	// Fast-path duplicate check; the email unique constraint remains the
	// source of truth if a concurrent registration slips past it.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	u := &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return stored, nil
}

func (s *userService) Login(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
