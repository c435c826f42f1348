// Package memory implements the domain repositories on top of plain
// in-process collections. A single Store owns both entity collections
// and their ID counters so the two-sided enrollment mutation happens
// under one lock.
package memory

import (
	"context"
	"sync"
	"time"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/user"
)

// Store holds all users and courses for the lifetime of the process.
// IDs are assigned by two independent counters starting at 1 and are
// never reused; there is no delete operation.
type Store struct {
	mu           sync.Mutex
	users        map[int64]*user.User
	usersByEmail map[string]int64
	userOrder    []int64
	nextUserID   int64

	courses      map[int64]*course.Course
	courseOrder  []int64
	nextCourseID int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*user.User),
		usersByEmail: make(map[string]int64),
		nextUserID:   1,
		courses:      make(map[int64]*course.Course),
		nextCourseID: 1,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() user.Repository { return (*userRepo)(s) }

// Courses returns the course repository view of the store.
func (s *Store) Courses() course.Repository { return (*courseRepo)(s) }

// Enroll updates the course roster and the student's enrollment list as
// one step under the store lock; a capacity failure leaves both sides
// untouched.
func (s *Store) Enroll(ctx context.Context, courseID, studentID int64) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[courseID]
	if !ok {
		return 0, false, course.ErrNotFound
	}
	u, ok := s.users[studentID]
	if !ok {
		return 0, false, user.ErrNotFound
	}

	added, err := c.EnrollStudent(studentID)
	if err != nil {
		return 0, false, err
	}
	if added {
		u.EnrollInCourse(courseID)
	}
	return len(c.EnrolledStudents), added, nil
}

func copyUser(u *user.User) *user.User {
	cp := *u
	cp.EnrolledCourses = append([]int64(nil), u.EnrolledCourses...)
	return &cp
}

func copyCourse(c *course.Course) *course.Course {
	cp := *c
	cp.EnrolledStudents = append([]int64(nil), c.EnrolledStudents...)
	return &cp
}

type userRepo Store

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.usersByEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}

	u.ID = r.nextUserID
	r.nextUserID++
	u.CreatedAt = time.Now().UTC()

	r.users[u.ID] = copyUser(u)
	r.usersByEmail[u.Email] = u.ID
	r.userOrder = append(r.userOrder, u.ID)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.usersByEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return copyUser(r.users[id]), nil
}

func (r *userRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.userOrder))
	for _, id := range r.userOrder {
		out = append(out, *copyUser(r.users[id]))
	}
	return out, nil
}

type courseRepo Store

func (r *courseRepo) Create(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextCourseID
	r.nextCourseID++
	c.CreatedAt = time.Now().UTC()

	r.courses[c.ID] = copyCourse(c)
	r.courseOrder = append(r.courseOrder, c.ID)
	return nil
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	return copyCourse(c), nil
}

func (r *courseRepo) List(ctx context.Context) ([]course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]course.Course, 0, len(r.courseOrder))
	for _, id := range r.courseOrder {
		out = append(out, *copyCourse(r.courses[id]))
	}
	return out, nil
}

func (r *courseRepo) SetPublished(ctx context.Context, id int64) (*course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	c.Publish()
	return copyCourse(c), nil
}
