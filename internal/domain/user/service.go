package user

import (
	"context"
	"errors"
)

var (
	ErrMissingFields = errors.New("Name and email are required")
	ErrInvalidEmail  = errors.New("Invalid email format")
	ErrInvalidRole   = errors.New("Invalid role. Must be admin, instructor, or student")
	ErrEmailTaken    = errors.New("User with this email already exists")
	ErrNotFound      = errors.New("User not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. An empty role defaults to student. A
// duplicate email is rejected before any other validation, so the
// conflict wins regardless of the remaining field values.
func (s *Service) Create(ctx context.Context, name, email, role string) (*User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	u, err := New(name, email, r)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
