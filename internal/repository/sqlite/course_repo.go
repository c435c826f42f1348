package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lms-platform/internal/domain/course"
)

// CourseRepository implements course.Repository using SQLite.
type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(s *Store) *CourseRepository {
	return &CourseRepository{db: s.db}
}

func (r *CourseRepository) Create(ctx context.Context, c *course.Course) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (title, description, instructor_id, max_students, is_published, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.InstructorID, c.MaxStudents, c.IsPublished, now,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*course.Course, error) {
	c := &course.Course{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, instructor_id, max_students, is_published, created_at
		 FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.InstructorID, &c.MaxStudents, &c.IsPublished, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, course.ErrNotFound
		}
		return nil, fmt.Errorf("query course: %w", err)
	}
	if err := r.loadRoster(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, instructor_id, max_students, is_published, created_at
		 FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var out []course.Course
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.InstructorID,
			&c.MaxStudents, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadRoster(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *CourseRepository) SetPublished(ctx context.Context, id int64) (*course.Course, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE courses SET is_published = 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("publish course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, course.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *CourseRepository) loadRoster(ctx context.Context, c *course.Course) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT student_id FROM enrollments WHERE course_id = ? ORDER BY created_at`, c.ID)
	if err != nil {
		return fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	c.EnrolledStudents = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan roster: %w", err)
		}
		c.EnrolledStudents = append(c.EnrolledStudents, id)
	}
	return rows.Err()
}
