package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-marketplace/internal/model"
)

// ErrSectionNotFound is returned when a section cannot be found in the DB.
var ErrSectionNotFound = errors.New("section not found")

// SectionRepo manages persistence for course sections.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo constructs a SectionRepo with the provided DB handle.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Create inserts a new section and populates the generated ID and
// timestamps on the given model.
func (r *SectionRepo) Create(ctx context.Context, s *model.Section) error {
	const qInsert = "INSERT INTO sections (course_id, title, position) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.CourseID, s.Title, s.Position)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT course_id, title, position, created_at FROM sections WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.CourseID, &s.Title, &s.Position, &s.CreatedAt)
}

// GetByID fetches a section by its primary key.
func (r *SectionRepo) GetByID(ctx context.Context, id uint64) (model.Section, error) {
	const q = "SELECT id, course_id, title, position, created_at FROM sections WHERE id = ? LIMIT 1"
	var s model.Section
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.CourseID, &s.Title, &s.Position, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Section{}, ErrSectionNotFound
	}
	return s, err
}

// ListByCourse returns the sections of a course in curriculum order.
func (r *SectionRepo) ListByCourse(ctx context.Context, courseID uint64) ([]model.Section, error) {
	const q = "SELECT id, course_id, title, position, created_at FROM sections WHERE course_id = ? ORDER BY position ASC, id ASC"
	rows, err := r.db.QueryContext(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Title, &s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
