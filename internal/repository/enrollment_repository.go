package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/course-marketplace/internal/model"
)

// EnrollmentRepo manages persistence for course enrollments. The
// enrollments table carries a UNIQUE KEY over (user_id, course_id), so
// the database is the single source of truth for idempotence; no
// in-process coordination is performed.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the provided DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// Create inserts an enrollment for the given (user, course) pair. A
// duplicate-entry violation means the pair is already enrolled and is
// treated as success; created reports whether a new row was written so
// callers can skip side effects (events) on repeats.
func (r *EnrollmentRepo) Create(ctx context.Context, userID, courseID uint64) (created bool, err error) {
	const q = "INSERT INTO enrollments (user_id, course_id) VALUES (?, ?)"
	_, err = r.db.ExecContext(ctx, q, userID, courseID)
	if err != nil {
		if IsDuplicateEntry(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Exists reports whether the given user is enrolled in the given course.
func (r *EnrollmentRepo) Exists(ctx context.Context, userID, courseID uint64) (bool, error) {
	const q = "SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, courseID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns all enrollments of a user, newest first.
func (r *EnrollmentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Enrollment, error) {
	const q = "SELECT id, user_id, course_id, created_at FROM enrollments WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
