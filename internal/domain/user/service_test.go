package user_test

import (
	"context"
	"errors"
	"testing"

	"lms-platform/internal/domain/user"
	"lms-platform/internal/repository/memory"
)

func newService() *user.Service {
	return user.NewService(memory.NewStore().Users())
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "Dr. Jane Smith", "jane@example.com", "instructor")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.Create(ctx, "John Doe", "john@example.com", "student")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if !a.IsActive {
		t.Fatal("expected new user to be active")
	}
	if len(a.EnrolledCourses) != 0 {
		t.Fatal("expected empty enrollment list")
	}
}

func TestCreateDefaultsRoleToStudent(t *testing.T) {
	svc := newService()

	u, err := svc.Create(context.Background(), "John Doe", "john@example.com", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Role != user.RoleStudent {
		t.Fatalf("expected role student, got %s", u.Role)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "jane@example.com", "student"); !errors.Is(err, user.ErrMissingFields) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
	if _, err := svc.Create(ctx, "Jane", "", "student"); !errors.Is(err, user.ErrMissingFields) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
	if _, err := svc.Create(ctx, "Jane", "invalid-email", "student"); !errors.Is(err, user.ErrInvalidEmail) {
		t.Fatalf("expected invalid email error, got %v", err)
	}
	if _, err := svc.Create(ctx, "Jane", "jane@example.com", "superuser"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected invalid role error, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "First", "dup@example.com", "student"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "Second", "dup@example.com", "admin"); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected email taken error, got %v", err)
	}
}

func TestDuplicateEmailWinsOverOtherErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "First", "dup@example.com", "student"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The conflict is reported even when other fields would also fail.
	if _, err := svc.Create(ctx, "", "dup@example.com", "student"); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected email taken over missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, "Second", "dup@example.com", "wizard"); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected email taken over bad role, got %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := newService()

	if _, err := svc.Get(context.Background(), 99999); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnrollInCourseIsIdempotent(t *testing.T) {
	u := &user.User{EnrolledCourses: []int64{}}

	if !u.EnrollInCourse(7) {
		t.Fatal("first enrollment should report newly added")
	}
	if u.EnrollInCourse(7) {
		t.Fatal("second enrollment should be a no-op")
	}
	if len(u.EnrolledCourses) != 1 {
		t.Fatalf("expected 1 enrolled course, got %d", len(u.EnrolledCourses))
	}
}
