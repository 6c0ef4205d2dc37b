package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/course-marketplace/internal/model"
	"github.com/iliyamo/course-marketplace/internal/repository"
)

type fakeLessons struct {
	refs map[uint64]repository.LessonCourseRef
	err  error
}

func (f *fakeLessons) GetCourseRef(_ context.Context, lessonID uint64) (repository.LessonCourseRef, error) {
	if f.err != nil {
		return repository.LessonCourseRef{}, f.err
	}
	ref, ok := f.refs[lessonID]
	if !ok {
		return repository.LessonCourseRef{}, repository.ErrLessonNotFound
	}
	return ref, nil
}

type fakeCourses struct {
	courses map[uint64]model.Course
	err     error
}

func (f *fakeCourses) GetByID(_ context.Context, id uint64) (model.Course, error) {
	if f.err != nil {
		return model.Course{}, f.err
	}
	co, ok := f.courses[id]
	if !ok {
		return model.Course{}, repository.ErrCourseNotFound
	}
	return co, nil
}

type fakeEnrollments struct {
	pairs map[[2]uint64]bool
	err   error
}

func (f *fakeEnrollments) Exists(_ context.Context, userID, courseID uint64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pairs[[2]uint64{userID, courseID}], nil
}

type fakeStore struct {
	err      error
	lastPath string
	lastTTL  time.Duration
}

func (f *fakeStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastPath = path
	f.lastTTL = ttl
	return "https://media.example.com/" + path + "?sig=abc", nil
}

func (f *fakeStore) SignedUploadURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://media.example.com/" + path + "?upload=1", nil
}

func strptr(s string) *string { return &s }

// newFixture builds a resolver around lesson 10 in section of course 7,
// owned by user 1, with user 2 enrolled and user 3 a stranger.
func newFixture(published bool, store *fakeStore) *LessonAccessResolver {
	lessons := &fakeLessons{refs: map[uint64]repository.LessonCourseRef{
		10: {LessonID: 10, MediaPath: strptr("videos/intro.mp4"), CourseIDs: []uint64{7}},
		11: {LessonID: 11, MediaPath: nil, CourseIDs: []uint64{7}},
		12: {LessonID: 12, MediaPath: strptr("videos/orphan.mp4"), CourseIDs: nil},
		13: {LessonID: 13, MediaPath: strptr("videos/multi.mp4"), CourseIDs: []uint64{7, 99}},
	}}
	courses := &fakeCourses{courses: map[uint64]model.Course{
		7: {ID: 7, AuthorID: 1, Title: "Intro to Go", Slug: "intro-to-go", IsPublished: published},
	}}
	enrollments := &fakeEnrollments{pairs: map[[2]uint64]bool{
		{2, 7}: true,
	}}
	return NewLessonAccessResolver(lessons, courses, enrollments, store)
}

func TestResolveLessonMedia_EnrolledUser(t *testing.T) {
	store := &fakeStore{}
	r := newFixture(true, store)

	media, err := r.ResolveLessonMedia(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ResolveLessonMedia: %v", err)
	}
	if media.URL == "" {
		t.Fatalf("expected a signed URL")
	}
	if media.ExpiresIn != 60 {
		t.Fatalf("expected a 60 second validity window, got %d", media.ExpiresIn)
	}
	if store.lastPath != "videos/intro.mp4" {
		t.Fatalf("signed wrong object: %q", store.lastPath)
	}
	if store.lastTTL != 60*time.Second {
		t.Fatalf("signed with wrong ttl: %v", store.lastTTL)
	}
}

func TestResolveLessonMedia_AuthorBypass(t *testing.T) {
	// User 1 owns course 7 but holds no enrollment.
	r := newFixture(true, &fakeStore{})
	if _, err := r.ResolveLessonMedia(context.Background(), 1, 10); err != nil {
		t.Fatalf("author should have access without enrollment: %v", err)
	}
}

func TestResolveLessonMedia_StrangerForbidden(t *testing.T) {
	r := newFixture(true, &fakeStore{})
	_, err := r.ResolveLessonMedia(context.Background(), 3, 10)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveLessonMedia_NoMediaPath(t *testing.T) {
	r := newFixture(true, &fakeStore{})
	_, err := r.ResolveLessonMedia(context.Background(), 2, 11)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for lesson without media, got %v", err)
	}
}

func TestResolveLessonMedia_MissingLesson(t *testing.T) {
	r := newFixture(true, &fakeStore{})
	_, err := r.ResolveLessonMedia(context.Background(), 2, 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing lesson, got %v", err)
	}
}

func TestResolveLessonMedia_BrokenCourseLink(t *testing.T) {
	// A lesson whose section/course rows are gone is indistinguishable
	// from a missing lesson.
	r := newFixture(true, &fakeStore{})
	_, err := r.ResolveLessonMedia(context.Background(), 2, 12)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for broken linkage, got %v", err)
	}
}

func TestResolveLessonMedia_FirstCourseWinsWhenJoinFansOut(t *testing.T) {
	// Lesson 13 joins to two course rows; the first one decides access.
	r := newFixture(true, &fakeStore{})
	if _, err := r.ResolveLessonMedia(context.Background(), 2, 13); err != nil {
		t.Fatalf("expected access via first joined course: %v", err)
	}
}

func TestResolveLessonMedia_UnpublishedCourseStillServed(t *testing.T) {
	// The publication flag is loaded but not consulted by the access
	// decision. This test pins that behavior so enforcing it later is a
	// deliberate change.
	r := newFixture(false, &fakeStore{})
	if _, err := r.ResolveLessonMedia(context.Background(), 2, 10); err != nil {
		t.Fatalf("enrolled user should still reach unpublished course media: %v", err)
	}
}

func TestResolveLessonMedia_DatabaseFailureWrappedAsUpstream(t *testing.T) {
	// Any relational-store failure along the chain surfaces as an
	// UpstreamError carrying the driver's message verbatim; callers never
	// see a raw database error.
	dbErr := errors.New("driver: bad connection")
	cases := []struct {
		name     string
		resolver *LessonAccessResolver
	}{
		{"lesson lookup", NewLessonAccessResolver(
			&fakeLessons{err: dbErr},
			&fakeCourses{},
			&fakeEnrollments{},
			&fakeStore{},
		)},
		{"course lookup", NewLessonAccessResolver(
			&fakeLessons{refs: map[uint64]repository.LessonCourseRef{
				10: {LessonID: 10, MediaPath: strptr("videos/intro.mp4"), CourseIDs: []uint64{7}},
			}},
			&fakeCourses{err: dbErr},
			&fakeEnrollments{},
			&fakeStore{},
		)},
		{"enrollment check", NewLessonAccessResolver(
			&fakeLessons{refs: map[uint64]repository.LessonCourseRef{
				10: {LessonID: 10, MediaPath: strptr("videos/intro.mp4"), CourseIDs: []uint64{7}},
			}},
			&fakeCourses{courses: map[uint64]model.Course{
				7: {ID: 7, AuthorID: 1, IsPublished: true},
			}},
			&fakeEnrollments{err: dbErr},
			&fakeStore{},
		)},
	}
	for _, tc := range cases {
		_, err := tc.resolver.ResolveLessonMedia(context.Background(), 2, 10)
		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("%s: expected UpstreamError, got %v", tc.name, err)
		}
		if upstream.Msg != "driver: bad connection" {
			t.Fatalf("%s: message not passed through verbatim: %q", tc.name, upstream.Msg)
		}
	}
}

func TestResolveLessonMedia_UpstreamErrorPassesMessage(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket policy denied request")}
	r := newFixture(true, store)
	_, err := r.ResolveLessonMedia(context.Background(), 2, 10)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Msg != "bucket policy denied request" {
		t.Fatalf("provider message not passed through verbatim: %q", upstream.Msg)
	}
}
