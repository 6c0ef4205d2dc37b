package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/course-marketplace/internal/model"
)

// ProgressRepo manages per-lesson completion records. The
// lesson_progress table carries a UNIQUE KEY over (user_id, lesson_id)
// and writes go through INSERT ... ON DUPLICATE KEY UPDATE, so marking
// the same lesson complete twice is idempotent by construction and the
// completion timestamp reflects the latest call.
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo constructs a ProgressRepo with the provided DB handle.
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// MarkComplete upserts a completed progress row for the (user, lesson)
// pair with the completion time set to NOW().
func (r *ProgressRepo) MarkComplete(ctx context.Context, userID, lessonID uint64) error {
	const q = `INSERT INTO lesson_progress (user_id, lesson_id, completed, completed_at)
               VALUES (?, ?, 1, NOW())
               ON DUPLICATE KEY UPDATE completed = 1, completed_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, userID, lessonID)
	return err
}

// Get returns the progress row for a (user, lesson) pair, or
// sql.ErrNoRows when the lesson has never been marked.
func (r *ProgressRepo) Get(ctx context.Context, userID, lessonID uint64) (model.LessonProgress, error) {
	const q = "SELECT id, user_id, lesson_id, completed, completed_at FROM lesson_progress WHERE user_id = ? AND lesson_id = ? LIMIT 1"
	var p model.LessonProgress
	err := r.db.QueryRowContext(ctx, q, userID, lessonID).Scan(
		&p.ID, &p.UserID, &p.LessonID, &p.Completed, &p.CompletedAt,
	)
	return p, err
}

// ListByUserAndCourse returns a user's completed lesson ids within a
// course, joined through the section relation. Used by clients to render
// curriculum checkmarks.
func (r *ProgressRepo) ListByUserAndCourse(ctx context.Context, userID, courseID uint64) ([]uint64, error) {
	const q = `SELECT p.lesson_id
               FROM lesson_progress p
               JOIN lessons l ON l.id = p.lesson_id
               JOIN sections s ON s.id = l.section_id
               WHERE p.user_id = ? AND s.course_id = ? AND p.completed = 1`
	rows, err := r.db.QueryContext(ctx, q, userID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
