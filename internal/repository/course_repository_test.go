package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/course-marketplace/internal/model"
)

func TestCourseCreate_PopulatesDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs(uint64(1), "Intro to Go", "intro-to-go").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT author_id, title, slug, is_published, created_at, updated_at FROM courses").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "title", "slug", "is_published", "created_at", "updated_at"}).
			AddRow(uint64(1), "Intro to Go", "intro-to-go", false, now, now))

	repo := NewCourseRepo(db)
	course := &model.Course{AuthorID: 1, Title: "Intro to Go", Slug: "intro-to-go"}
	if err := repo.Create(context.Background(), course); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.ID != 7 {
		t.Fatalf("expected generated id 7, got %d", course.ID)
	}
	if course.IsPublished {
		t.Fatalf("new courses must start unpublished")
	}
}

func TestCourseCreate_DuplicateSlugIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(uint64(1), "Intro to Go", "intro-to-go").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'intro-to-go' for key 'uniq_slug'"))

	repo := NewCourseRepo(db)
	course := &model.Course{AuthorID: 1, Title: "Intro to Go", Slug: "intro-to-go"}
	if err := repo.Create(context.Background(), course); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate slug, got %v", err)
	}
}

func TestCourseGetByIDAndAuthor_OtherAuthorLooksMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = \\? AND author_id = \\?").
		WithArgs(uint64(7), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "slug", "is_published", "created_at", "updated_at"}))

	repo := NewCourseRepo(db)
	if _, err := repo.GetByIDAndAuthor(context.Background(), 7, 99); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound for foreign course, got %v", err)
	}
}
