package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lms-platform/internal/domain/user"
)

// UserRepository implements user.Repository using SQLite.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{db: s.db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, role, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, string(u.Role), u.IsActive, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := r.scanOne(ctx, `SELECT id, name, email, role, is_active, created_at
		 FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadEnrollments(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := r.scanOne(ctx, `SELECT id, name, email, role, is_active, created_at
		 FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, err
	}
	if err := r.loadEnrollments(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role, is_active, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		var u user.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = user.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadEnrollments(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := &user.User{}
	var role string
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Role = user.Role(role)
	return u, nil
}

func (r *UserRepository) loadEnrollments(ctx context.Context, u *user.User) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT course_id FROM enrollments WHERE student_id = ? ORDER BY created_at`, u.ID)
	if err != nil {
		return fmt.Errorf("query enrollments: %w", err)
	}
	defer rows.Close()

	u.EnrolledCourses = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan enrollment: %w", err)
		}
		u.EnrolledCourses = append(u.EnrolledCourses, id)
	}
	return rows.Err()
}
