package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-marketplace/internal/repository"
	"github.com/iliyamo/course-marketplace/internal/service"
)

func newStudentHandlerWithMock(t *testing.T) (*StudentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	courseRepo := repository.NewCourseRepo(db)
	lessonRepo := repository.NewLessonRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	resolver := service.NewLessonAccessResolver(lessonRepo, courseRepo, enrollmentRepo, &fakeObjectStore{})
	return NewStudentHandler(courseRepo, lessonRepo, enrollmentRepo, progressRepo, resolver), mock
}

func TestLessonMedia_DatabaseFailureIsBadRequest(t *testing.T) {
	// A relational-store failure during the lesson lookup must come back
	// as a 400 carrying the driver's message, never a generic 500.
	h, mock := newStudentHandlerWithMock(t)

	mock.ExpectQuery("SELECT l.id, l.media_path, c.id FROM lessons").
		WithArgs(uint64(10)).
		WillReturnError(errors.New("driver: bad connection"))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/v1/lessons/10/media", "")
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(2))

	if err := h.LessonMedia(c); err != nil {
		t.Fatalf("LessonMedia: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a database failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "driver: bad connection") {
		t.Fatalf("driver message not passed through verbatim: %s", rec.Body.String())
	}
}

func TestEnroll_DatabaseFailureIsBadRequest(t *testing.T) {
	h, mock := newStudentHandlerWithMock(t)

	mock.ExpectQuery("SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = \\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnError(errors.New("driver: bad connection"))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/courses/7/enroll", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("user_id", uint64(2))

	if err := h.Enroll(c); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a database failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "driver: bad connection") {
		t.Fatalf("driver message not passed through verbatim: %s", rec.Body.String())
	}
}
