// Package enrollment orchestrates the one multi-entity operation in the
// system: putting a student on a course roster and the course on the
// student's enrollment list in a single step.
package enrollment

import (
	"context"
	"errors"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/user"
)

var ErrStudentNotFound = errors.New("Student not found")

// Repository performs the two-sided enrollment mutation atomically:
// either both the course roster and the student's course list are
// updated, or neither is.
type Repository interface {
	// Enroll returns the post-mutation roster size and whether the
	// student was newly added. Returns course.ErrCourseFull when the
	// roster is at capacity.
	Enroll(ctx context.Context, courseID, studentID int64) (count int, added bool, err error)
}

// Result is the enrollment confirmation returned to the caller.
type Result struct {
	Student string
	Course  string
	Count   int
	Added   bool
}

type Service struct {
	repo    Repository
	courses course.Repository
	users   user.Repository
}

func NewService(repo Repository, courses course.Repository, users user.Repository) *Service {
	return &Service{repo: repo, courses: courses, users: users}
}

// Enroll enrolls the student in the course. Lookup failures map to not
// found, an unpublished course rejects enrollment, and re-enrolling the
// same pair leaves the roster unchanged.
func (s *Service) Enroll(ctx context.Context, courseID, studentID int64) (*Result, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, course.ErrNotFound
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil || student.Role != user.RoleStudent {
		return nil, ErrStudentNotFound
	}

	if !c.IsPublished {
		return nil, course.ErrNotPublished
	}

	count, added, err := s.repo.Enroll(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Student: student.Name,
		Course:  c.Title,
		Count:   count,
		Added:   added,
	}, nil
}
