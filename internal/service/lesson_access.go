// Package service holds the access-control logic that sits between the
// HTTP handlers and the repositories. The media resolver is the one
// decision procedure in the system that chains several lookups before
// delegating to the object store, so its collaborators are declared as
// interfaces and wired with the concrete repositories at startup.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/course-marketplace/internal/model"
	"github.com/iliyamo/course-marketplace/internal/repository"
	"github.com/iliyamo/course-marketplace/internal/storage"
)

// MediaURLTTL is the validity window of signed lesson-media URLs.
const MediaURLTTL = 60 * time.Second

// ErrNotFound is returned when the lesson does not exist, has no media,
// or cannot be linked to a course. The three cases are deliberately
// indistinguishable to callers.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller is authenticated but neither
// owns the course nor is enrolled in it.
var ErrForbidden = errors.New("forbidden")

// UpstreamError wraps a failure reported by a backing store, whether
// the object store or the relational database. The provider's message
// is passed through verbatim so callers can surface it unchanged.
type UpstreamError struct {
	Msg string
}

func (e *UpstreamError) Error() string { return e.Msg }

// LessonSource resolves a lesson together with its course linkage.
type LessonSource interface {
	GetCourseRef(ctx context.Context, lessonID uint64) (repository.LessonCourseRef, error)
}

// CourseSource loads course rows for the ownership check.
type CourseSource interface {
	GetByID(ctx context.Context, id uint64) (model.Course, error)
}

// EnrollmentSource answers whether a (user, course) enrollment exists.
type EnrollmentSource interface {
	Exists(ctx context.Context, userID, courseID uint64) (bool, error)
}

// SignedMedia is the successful outcome of a media resolution: a
// capability URL and the number of seconds it stays valid.
type SignedMedia struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// LessonAccessResolver decides whether a user may view a lesson's media
// and, when allowed, obtains a time-limited retrieval URL. It performs
// two reads and one signing call per request and never mutates state.
type LessonAccessResolver struct {
	lessons     LessonSource
	courses     CourseSource
	enrollments EnrollmentSource
	store       storage.ObjectStore
}

// NewLessonAccessResolver wires the resolver with its collaborators.
func NewLessonAccessResolver(lessons LessonSource, courses CourseSource, enrollments EnrollmentSource, store storage.ObjectStore) *LessonAccessResolver {
	if lessons == nil || courses == nil || enrollments == nil || store == nil {
		panic("nil collaborator passed to NewLessonAccessResolver")
	}
	return &LessonAccessResolver{lessons: lessons, courses: courses, enrollments: enrollments, store: store}
}

// ResolveLessonMedia authorizes userID against the lesson's course and
// returns a signed URL for the lesson media. Access is granted when the
// user authored the course or holds an enrollment; the publication flag
// is loaded with the course row but not consulted here.
func (r *LessonAccessResolver) ResolveLessonMedia(ctx context.Context, userID, lessonID uint64) (SignedMedia, error) {
	ref, err := r.lessons.GetCourseRef(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return SignedMedia{}, ErrNotFound
		}
		return SignedMedia{}, &UpstreamError{Msg: err.Error()}
	}
	if ref.MediaPath == nil || *ref.MediaPath == "" {
		return SignedMedia{}, ErrNotFound
	}
	courseID, ok := ref.CourseID()
	if !ok {
		// A lesson whose section/course linkage is broken looks the same
		// as a missing lesson to the caller.
		return SignedMedia{}, ErrNotFound
	}

	course, err := r.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return SignedMedia{}, ErrNotFound
		}
		return SignedMedia{}, &UpstreamError{Msg: err.Error()}
	}
	enrolled, err := r.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return SignedMedia{}, &UpstreamError{Msg: err.Error()}
	}

	if course.AuthorID != userID && !enrolled {
		return SignedMedia{}, ErrForbidden
	}

	url, err := r.store.SignedURL(ctx, *ref.MediaPath, MediaURLTTL)
	if err != nil {
		return SignedMedia{}, &UpstreamError{Msg: err.Error()}
	}
	return SignedMedia{URL: url, ExpiresIn: int(MediaURLTTL / time.Second)}, nil
}
