package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-marketplace/internal/queue"
	"github.com/iliyamo/course-marketplace/internal/repository"
	"github.com/iliyamo/course-marketplace/internal/service"
)

// StudentHandler groups the repositories and the media resolver needed
// for student-side operations: enrolling in courses, marking lessons
// complete and fetching signed lesson-media URLs. All methods assume JWT
// authentication and role validation have already been performed by
// middleware.
type StudentHandler struct {
	CourseRepo     *repository.CourseRepo
	LessonRepo     *repository.LessonRepo
	EnrollmentRepo *repository.EnrollmentRepo
	ProgressRepo   *repository.ProgressRepo
	Resolver       *service.LessonAccessResolver
}

// NewStudentHandler constructs a StudentHandler with the provided
// dependencies. All dependencies must be non-nil.
func NewStudentHandler(courseRepo *repository.CourseRepo, lessonRepo *repository.LessonRepo, enrollmentRepo *repository.EnrollmentRepo, progressRepo *repository.ProgressRepo, resolver *service.LessonAccessResolver) *StudentHandler {
	if courseRepo == nil || lessonRepo == nil || enrollmentRepo == nil || progressRepo == nil || resolver == nil {
		panic("nil dependency passed to NewStudentHandler")
	}
	return &StudentHandler{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Resolver:       resolver,
	}
}

// Enroll handles POST /v1/courses/:id/enroll. Enrolling in the same
// course twice returns 200 both times; the uniqueness constraint in the
// database makes the second insert a no-op. The enrollment event is
// published best effort and only for first-time enrollments.
func (h *StudentHandler) Enroll(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	ctx := c.Request().Context()
	course, err := h.CourseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	created, err := h.EnrollmentRepo.Create(ctx, userID, courseID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if created {
		// Failures here are logged by the publisher and ignored: the
		// enrollment itself has already succeeded.
		_ = service.PublishEnrollmentCreated(ctx, queue.EnrollmentCreatedEvent{
			UserID:      userID,
			CourseID:    course.ID,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
			AuthorID:    course.AuthorID,
			EnrolledAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"enrolled": true})
}

// MarkComplete handles POST /v1/lessons/:id/complete. The write is an
// upsert keyed on (user, lesson), so repeated calls yield the same stored
// state with a refreshed completion timestamp.
func (h *StudentHandler) MarkComplete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lessonID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lesson id"})
	}
	ctx := c.Request().Context()
	if _, err := h.LessonRepo.GetByID(ctx, lessonID); err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.ProgressRepo.MarkComplete(ctx, userID, lessonID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"completed": true})
}

// LessonMedia handles GET /v1/lessons/:id/media. The resolver decides
// whether the caller may view the lesson and, if so, returns a signed URL
// valid for sixty seconds.
func (h *StudentHandler) LessonMedia(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lessonID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lesson id"})
	}
	media, err := h.Resolver.ResolveLessonMedia(c.Request().Context(), userID, lessonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson media not found"})
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			// The resolver wraps every store failure as UpstreamError;
			// the message travels to the client unchanged.
			var upstream *service.UpstreamError
			if errors.As(err, &upstream) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": upstream.Msg})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, media)
}

// MyEnrollments handles GET /v1/my-enrollments and lists the caller's
// enrollments with course metadata.
func (h *StudentHandler) MyEnrollments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	enrollments, err := h.EnrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	type item struct {
		CourseID   uint64 `json:"course_id"`
		Title      string `json:"title"`
		Slug       string `json:"slug"`
		EnrolledAt string `json:"enrolled_at"`
	}
	out := make([]item, 0, len(enrollments))
	for _, e := range enrollments {
		co, err := h.CourseRepo.GetByID(ctx, e.CourseID)
		if err != nil {
			continue // course removed since enrollment; skip
		}
		out = append(out, item{
			CourseID:   co.ID,
			Title:      co.Title,
			Slug:       co.Slug,
			EnrolledAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CourseProgress handles GET /v1/courses/:id/progress and returns the
// lesson ids the caller has completed within the course.
func (h *StudentHandler) CourseProgress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	done, err := h.ProgressRepo.ListByUserAndCourse(c.Request().Context(), userID, courseID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if done == nil {
		done = []uint64{}
	}
	return c.JSON(http.StatusOK, echo.Map{"completed_lesson_ids": done})
}
