// This file defines the Lesson queries, including the joined lookup the
// media access check is built on. The lessons -> sections -> courses join
// can surface more than one course row for a lesson when the linkage data
// is denormalized, so the joined result is normalized to a single course
// identifier in exactly one place (LessonCourseRef.CourseID) before any
// business logic sees it.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-marketplace/internal/model"
)

// ErrLessonNotFound is returned when a lesson cannot be found in the DB.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepo manages persistence for lessons.
type LessonRepo struct {
	db *sql.DB
}

// NewLessonRepo constructs a LessonRepo with the provided DB handle.
func NewLessonRepo(db *sql.DB) *LessonRepo {
	return &LessonRepo{db: db}
}

// Create inserts a new lesson and populates the generated ID and
// timestamps on the given model.
func (r *LessonRepo) Create(ctx context.Context, l *model.Lesson) error {
	const qInsert = "INSERT INTO lessons (section_id, title, position) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, l.SectionID, l.Title, l.Position)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = "SELECT section_id, title, position, media_path, created_at, updated_at FROM lessons WHERE id = ?"
	var mediaPath sql.NullString
	err = r.db.QueryRowContext(ctx, qSelect, l.ID).Scan(
		&l.SectionID, &l.Title, &l.Position, &mediaPath, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if mediaPath.Valid {
		mp := mediaPath.String
		l.MediaPath = &mp
	}
	return nil
}

// GetByID fetches a lesson by its primary key.
func (r *LessonRepo) GetByID(ctx context.Context, id uint64) (model.Lesson, error) {
	const q = "SELECT id, section_id, title, position, media_path, created_at, updated_at FROM lessons WHERE id = ? LIMIT 1"
	var (
		l         model.Lesson
		mediaPath sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.SectionID, &l.Title, &l.Position, &mediaPath, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Lesson{}, ErrLessonNotFound
	}
	if err != nil {
		return model.Lesson{}, err
	}
	if mediaPath.Valid {
		mp := mediaPath.String
		l.MediaPath = &mp
	}
	return l, nil
}

// ListBySection returns the lessons of a section in curriculum order.
func (r *LessonRepo) ListBySection(ctx context.Context, sectionID uint64) ([]model.Lesson, error) {
	const q = "SELECT id, section_id, title, position, media_path, created_at, updated_at FROM lessons WHERE section_id = ? ORDER BY position ASC, id ASC"
	rows, err := r.db.QueryContext(ctx, q, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Lesson
	for rows.Next() {
		var (
			l         model.Lesson
			mediaPath sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.SectionID, &l.Title, &l.Position, &mediaPath, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		if mediaPath.Valid {
			mp := mediaPath.String
			l.MediaPath = &mp
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SetMediaPath stores the media object key on a lesson.
func (r *LessonRepo) SetMediaPath(ctx context.Context, id uint64, path string) error {
	const q = "UPDATE lessons SET media_path = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, path, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLessonNotFound
	}
	return nil
}

// LessonCourseRef carries the lesson fields the media access check needs
// together with the raw course linkage produced by the join. CourseIDs may
// hold zero, one or several entries depending on the linkage data.
type LessonCourseRef struct {
	LessonID  uint64
	MediaPath *string
	CourseIDs []uint64
}

// CourseID collapses the joined course linkage to a canonical scalar.
// When the join yields a collection the first element wins; ok is false
// when no course could be linked at all.
func (ref LessonCourseRef) CourseID() (uint64, bool) {
	if len(ref.CourseIDs) == 0 {
		return 0, false
	}
	return ref.CourseIDs[0], true
}

// GetCourseRef resolves a lesson together with its owning course id(s)
// through the section relation. A missing lesson yields ErrLessonNotFound;
// a lesson whose section or course rows are gone comes back with an empty
// CourseIDs slice, which callers treat the same as not found.
func (r *LessonRepo) GetCourseRef(ctx context.Context, lessonID uint64) (LessonCourseRef, error) {
	const q = `SELECT l.id, l.media_path, c.id
               FROM lessons l
               LEFT JOIN sections s ON s.id = l.section_id
               LEFT JOIN courses c ON c.id = s.course_id
               WHERE l.id = ?`
	rows, err := r.db.QueryContext(ctx, q, lessonID)
	if err != nil {
		return LessonCourseRef{}, err
	}
	defer rows.Close()

	var (
		ref   LessonCourseRef
		found bool
	)
	for rows.Next() {
		var (
			mediaPath sql.NullString
			courseID  sql.NullInt64
		)
		if err := rows.Scan(&ref.LessonID, &mediaPath, &courseID); err != nil {
			return LessonCourseRef{}, err
		}
		found = true
		if mediaPath.Valid && ref.MediaPath == nil {
			mp := mediaPath.String
			ref.MediaPath = &mp
		}
		if courseID.Valid {
			ref.CourseIDs = append(ref.CourseIDs, uint64(courseID.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return LessonCourseRef{}, err
	}
	if !found {
		return LessonCourseRef{}, ErrLessonNotFound
	}
	return ref, nil
}
