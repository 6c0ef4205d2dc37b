package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetCourseRef_SingleCourse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "media_path", "course_id"}).
		AddRow(uint64(10), "videos/intro.mp4", int64(7))
	mock.ExpectQuery("SELECT l.id, l.media_path, c.id").
		WithArgs(uint64(10)).
		WillReturnRows(rows)

	repo := NewLessonRepo(db)
	ref, err := repo.GetCourseRef(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetCourseRef: %v", err)
	}
	courseID, ok := ref.CourseID()
	if !ok || courseID != 7 {
		t.Fatalf("expected course 7, got %d ok=%v", courseID, ok)
	}
	if ref.MediaPath == nil || *ref.MediaPath != "videos/intro.mp4" {
		t.Fatalf("media path not carried through: %v", ref.MediaPath)
	}
}

func TestGetCourseRef_JoinFansOutFirstWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Denormalized linkage can surface several course rows for one
	// lesson; the normalization point must prefer the first.
	rows := sqlmock.NewRows([]string{"id", "media_path", "course_id"}).
		AddRow(uint64(10), "videos/intro.mp4", int64(7)).
		AddRow(uint64(10), "videos/intro.mp4", int64(99))
	mock.ExpectQuery("SELECT l.id, l.media_path, c.id").
		WithArgs(uint64(10)).
		WillReturnRows(rows)

	repo := NewLessonRepo(db)
	ref, err := repo.GetCourseRef(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetCourseRef: %v", err)
	}
	if len(ref.CourseIDs) != 2 {
		t.Fatalf("expected both joined rows collected, got %v", ref.CourseIDs)
	}
	courseID, ok := ref.CourseID()
	if !ok || courseID != 7 {
		t.Fatalf("expected first course to win, got %d ok=%v", courseID, ok)
	}
}

func TestGetCourseRef_BrokenLinkage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// LEFT JOINs keep the lesson row alive with a NULL course id when
	// the section or course rows are gone.
	rows := sqlmock.NewRows([]string{"id", "media_path", "course_id"}).
		AddRow(uint64(10), "videos/intro.mp4", nil)
	mock.ExpectQuery("SELECT l.id, l.media_path, c.id").
		WithArgs(uint64(10)).
		WillReturnRows(rows)

	repo := NewLessonRepo(db)
	ref, err := repo.GetCourseRef(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetCourseRef: %v", err)
	}
	if _, ok := ref.CourseID(); ok {
		t.Fatalf("expected no canonical course id for broken linkage")
	}
}

func TestGetCourseRef_MissingLesson(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT l.id, l.media_path, c.id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "media_path", "course_id"}))

	repo := NewLessonRepo(db)
	if _, err := repo.GetCourseRef(context.Background(), 404); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}
