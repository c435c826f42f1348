package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lms-platform/internal/domain/course"
)

// EnrollmentRepository implements enrollment.Repository using SQLite.
// The two-sided mutation runs inside one transaction so a capacity
// failure leaves nothing behind.
type EnrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(s *Store) *EnrollmentRepository {
	return &EnrollmentRepository{db: s.db}
}

func (r *EnrollmentRepository) Enroll(ctx context.Context, courseID, studentID int64) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin enroll: %w", err)
	}
	defer tx.Rollback()

	var maxStudents, count int
	err = tx.QueryRowContext(ctx,
		`SELECT c.max_students,
		        (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id)
		 FROM courses c WHERE c.id = ?`, courseID,
	).Scan(&maxStudents, &count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, course.ErrNotFound
		}
		return 0, false, fmt.Errorf("count roster: %w", err)
	}

	// Capacity is checked before membership, so a full roster rejects
	// even a student who is already on it.
	if count >= maxStudents {
		return 0, false, course.ErrCourseFull
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = ? AND student_id = ?`,
		courseID, studentID,
	).Scan(&exists)
	if err != nil {
		return 0, false, fmt.Errorf("check enrollment: %w", err)
	}
	if exists > 0 {
		return count, false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO enrollments (course_id, student_id, created_at) VALUES (?, ?, ?)`,
		courseID, studentID, time.Now().UTC(),
	); err != nil {
		return 0, false, fmt.Errorf("insert enrollment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit enroll: %w", err)
	}
	return count + 1, true, nil
}
