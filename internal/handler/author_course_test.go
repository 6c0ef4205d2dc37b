package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-marketplace/internal/config"
	"github.com/iliyamo/course-marketplace/internal/repository"
)

// fakeObjectStore records signing calls so tests can assert that denied
// requests never reach the object store.
type fakeObjectStore struct {
	signCalls   int
	uploadCalls int
}

func (f *fakeObjectStore) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	f.signCalls++
	return "https://media.example.com/" + path + "?sig=abc", nil
}

func (f *fakeObjectStore) SignedUploadURL(_ context.Context, path string, _ time.Duration) (string, error) {
	f.uploadCalls++
	return "https://media.example.com/" + path + "?upload=1", nil
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuthorHandlerWithMock(t *testing.T) (*AuthorHandler, sqlmock.Sqlmock, *fakeObjectStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := &fakeObjectStore{}
	h := NewAuthorHandler(
		config.Config{UploadURLTTLMin: 15},
		repository.NewCourseRepo(db),
		repository.NewSectionRepo(db),
		repository.NewLessonRepo(db),
		store,
	)
	return h, mock, store
}

func TestCreateUploadURL_NonOwnerDenied(t *testing.T) {
	h, mock, store := newAuthorHandlerWithMock(t)

	// Lesson 10 belongs to course 7, which author 1 owns.
	mock.ExpectQuery("SELECT l.id, l.media_path, c.id FROM lessons").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "media_path", "course_id"}).
			AddRow(uint64(10), nil, uint64(7)))
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = \\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "slug", "is_published", "created_at", "updated_at"}).
			AddRow(uint64(7), uint64(1), "Intro to Go", "intro-to-go", true, now, now))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/lessons/10/upload-url", `{"filename":"intro.mp4"}`)
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(2)) // authenticated author, but not the owner

	if err := h.CreateUploadURL(c); err != nil {
		t.Fatalf("CreateUploadURL: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-owner, got %d", rec.Code)
	}
	if store.uploadCalls != 0 {
		t.Fatalf("denied request must not sign an upload URL")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("denied request must not write a media path: %v", err)
	}
}

func TestCreateUploadURL_OwnerGetsSignedPutURL(t *testing.T) {
	h, mock, store := newAuthorHandlerWithMock(t)

	mock.ExpectQuery("SELECT l.id, l.media_path, c.id FROM lessons").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "media_path", "course_id"}).
			AddRow(uint64(10), nil, uint64(7)))
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, author_id, title, slug, is_published, created_at, updated_at FROM courses WHERE id = \\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "slug", "is_published", "created_at", "updated_at"}).
			AddRow(uint64(7), uint64(1), "Intro to Go", "intro-to-go", true, now, now))
	mock.ExpectExec("UPDATE lessons SET media_path = \\?").
		WithArgs("courses/7/lessons/10/intro.mp4", uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/v1/lessons/10/upload-url", `{"filename":"intro.mp4"}`)
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(1)) // the owning author

	if err := h.CreateUploadURL(c); err != nil {
		t.Fatalf("CreateUploadURL: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.uploadCalls != 1 {
		t.Fatalf("expected exactly one upload-URL signing call, got %d", store.uploadCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("media path was not stored: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"intro.mp4", "intro.mp4"},
		{"  Lesson 1.mp4 ", "Lesson1.mp4"},
		{"../../etc/passwd", "etcpasswd"},
		{"a/b\\c.mp4", "abc.mp4"},
		{"...", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
