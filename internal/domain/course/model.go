package course

import (
	"context"
	"time"

	"lms-platform/internal/platform/validate"
)

// MaxStudents is the fixed roster capacity of every course.
const MaxStudents = 50

type Course struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	InstructorID     int64     `json:"instructorId"`
	EnrolledStudents []int64   `json:"enrolledStudents"`
	MaxStudents      int       `json:"maxStudents"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
}

// New validates the input and builds an unpublished Course with an
// empty roster. ID and CreatedAt are assigned by the repository.
func New(title, description string, instructorID int64) (*Course, error) {
	if !validate.Required(title) || !validate.Required(description) || instructorID == 0 {
		return nil, ErrMissingFields
	}
	return &Course{
		Title:            title,
		Description:      description,
		InstructorID:     instructorID,
		EnrolledStudents: []int64{},
		MaxStudents:      MaxStudents,
	}, nil
}

// Publish marks the course published. The transition is one-way and
// idempotent; there is no unpublish.
func (c *Course) Publish() {
	c.IsPublished = true
}

// EnrollStudent adds the student to the roster and reports whether it
// was newly added. Returns ErrCourseFull once the roster is at
// MaxStudents; re-enrolling an existing student is a no-op.
func (c *Course) EnrollStudent(studentID int64) (bool, error) {
	if len(c.EnrolledStudents) >= c.MaxStudents {
		return false, ErrCourseFull
	}
	for _, id := range c.EnrolledStudents {
		if id == studentID {
			return false, nil
		}
	}
	c.EnrolledStudents = append(c.EnrolledStudents, studentID)
	return true, nil
}

type Repository interface {
	// Create assigns the next course ID and the creation timestamp.
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id int64) (*Course, error)
	// List returns all courses in insertion order.
	List(ctx context.Context) ([]Course, error)
	// SetPublished flips the publish flag; publishing twice is a no-op.
	SetPublished(ctx context.Context, id int64) (*Course, error)
}
