package course

import (
	"context"
	"errors"

	"lms-platform/internal/domain/user"
)

var (
	ErrMissingFields     = errors.New("Title, description, and instructor ID are required")
	ErrInvalidInstructor = errors.New("Invalid instructor ID")
	ErrNotFound          = errors.New("Course not found")
	ErrCourseFull        = errors.New("Course is at maximum capacity")
	ErrNotPublished      = errors.New("Course is not published")
)

type Service struct {
	repo  Repository
	users user.Repository
}

func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Create builds a course after checking that the referenced user exists
// and holds the instructor role at creation time. The role is not
// re-validated afterwards.
func (s *Service) Create(ctx context.Context, title, description string, instructorID int64) (*Course, error) {
	c, err := New(title, description, instructorID)
	if err != nil {
		return nil, err
	}

	instructor, err := s.users.GetByID(ctx, instructorID)
	if err != nil || instructor.Role != user.RoleInstructor {
		return nil, ErrInvalidInstructor
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *Service) Publish(ctx context.Context, id int64) (*Course, error) {
	return s.repo.SetPublished(ctx, id)
}
