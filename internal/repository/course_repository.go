// Package repository contains data access logic separated from HTTP handlers.
// This file defines the course queries. A course belongs to a single author
// and contains multiple sections; only published courses appear in the
// public catalog. AuthorID and timestamps should not be exposed via the
// public API responses.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-marketplace/internal/model"
)

// ErrCourseNotFound is returned when a course cannot be found in the DB.
var ErrCourseNotFound = errors.New("course not found")

// CourseRepo encapsulates all database queries related to courses.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo constructs a CourseRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// Create inserts a new course. On success the ID, publication flag and
// timestamps are populated on the given model via a follow-up SELECT.
// A duplicate slug is reported as ErrConflict.
func (r *CourseRepo) Create(ctx context.Context, co *model.Course) error {
	const qInsert = "INSERT INTO courses (author_id, title, slug) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, co.AuthorID, co.Title, co.Slug)
	if err != nil {
		if IsDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	co.ID = uint64(id)

	// Follow-up SELECT to populate DB-default fields (is_published, timestamps).
	const qSelect = "SELECT author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, co.ID).Scan(
		&co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt,
	)
}

// GetByID fetches a course by its primary key.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	const q = "SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = ? LIMIT 1"
	var co model.Course
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&co.ID, &co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Course{}, ErrCourseNotFound
	}
	return co, err
}

// GetBySlug fetches a course by its unique slug.
func (r *CourseRepo) GetBySlug(ctx context.Context, slug string) (model.Course, error) {
	const q = "SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE slug = ? LIMIT 1"
	var co model.Course
	err := r.db.QueryRowContext(ctx, q, slug).Scan(
		&co.ID, &co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Course{}, ErrCourseNotFound
	}
	return co, err
}

// GetByIDAndAuthor fetches a course only when it belongs to the given
// author. A course owned by someone else is reported as not found so
// handlers do not leak existence to other authors.
func (r *CourseRepo) GetByIDAndAuthor(ctx context.Context, id, authorID uint64) (model.Course, error) {
	const q = "SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = ? AND author_id = ? LIMIT 1"
	var co model.Course
	err := r.db.QueryRowContext(ctx, q, id, authorID).Scan(
		&co.ID, &co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Course{}, ErrCourseNotFound
	}
	return co, err
}

// ListByAuthor returns every course owned by the given author, newest first.
func (r *CourseRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Course, error) {
	const q = "SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE author_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Course
	for rows.Next() {
		var co model.Course
		if err := rows.Scan(&co.ID, &co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, co)
	}
	return out, rows.Err()
}

// ListPublished returns all published courses for the public catalog.
func (r *CourseRepo) ListPublished(ctx context.Context) ([]model.Course, error) {
	const q = "SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE is_published = 1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Course
	for rows.Next() {
		var co model.Course
		if err := rows.Scan(&co.ID, &co.AuthorID, &co.Title, &co.Slug, &co.IsPublished, &co.CreatedAt, &co.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, co)
	}
	return out, rows.Err()
}

// UpdateTitle renames a course owned by the given author. Returns
// ErrCourseNotFound when the course does not exist or belongs to someone else.
func (r *CourseRepo) UpdateTitle(ctx context.Context, id, authorID uint64, title string) error {
	const q = "UPDATE courses SET title = ? WHERE id = ? AND author_id = ?"
	res, err := r.db.ExecContext(ctx, q, title, id, authorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows when the title is unchanged,
		// so only treat this as a miss when the row really isn't ours.
		if _, gerr := r.GetByIDAndAuthor(ctx, id, authorID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// SetPublished flips the publication flag on a course owned by the given
// author. Publishing an already-published course is a no-op success.
func (r *CourseRepo) SetPublished(ctx context.Context, id, authorID uint64, published bool) error {
	const q = "UPDATE courses SET is_published = ? WHERE id = ? AND author_id = ?"
	res, err := r.db.ExecContext(ctx, q, published, id, authorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "not yours / missing" from "already in that state".
		if _, gerr := r.GetByIDAndAuthor(ctx, id, authorID); gerr != nil {
			return gerr
		}
	}
	return nil
}
