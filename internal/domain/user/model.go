package user

import (
	"context"
	"time"

	"lms-platform/internal/platform/validate"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole maps a request string onto a Role. An empty string defaults
// to student.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return Role(s), nil
	case "":
		return RoleStudent, nil
	default:
		return "", ErrInvalidRole
	}
}

type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	EnrolledCourses []int64   `json:"enrolledCourses"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// New validates the input and builds a User. ID and CreatedAt are
// assigned by the repository on insert.
func New(name, email string, role Role) (*User, error) {
	if !validate.Required(name) || !validate.Required(email) {
		return nil, ErrMissingFields
	}
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}
	return &User{
		Name:            name,
		Email:           email,
		Role:            role,
		EnrolledCourses: []int64{},
		IsActive:        true,
	}, nil
}

// EnrollInCourse adds the course to the user's enrollment list and
// reports whether it was newly added. Re-enrolling is a no-op.
func (u *User) EnrollInCourse(courseID int64) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return false
		}
	}
	u.EnrolledCourses = append(u.EnrolledCourses, courseID)
	return true
}

type Repository interface {
	// Create assigns the next user ID and the creation timestamp.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]User, error)
}
