// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public catalog API. These routes allow
// unauthenticated users to browse published courses without requiring
// authentication. Sensitive fields (author IDs, media paths, timestamps)
// are filtered from responses.

package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/course-marketplace/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// catalog browsing. It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
    CourseRepo  *repository.CourseRepo
    SectionRepo *repository.SectionRepo
    LessonRepo  *repository.LessonRepo
}

// PublicCourse represents a course exposed via the public API. It
// contains only safe fields.
type PublicCourse struct {
    ID    uint64 `json:"id"`
    Title string `json:"title"`
    Slug  string `json:"slug"`
}

// PublicLesson is a lesson entry in the public curriculum. Media paths
// are never exposed; students obtain media through the authorized signed
// URL endpoint.
type PublicLesson struct {
    ID       uint64 `json:"id"`
    Title    string `json:"title"`
    Position uint32 `json:"position"`
    HasMedia bool   `json:"has_media"`
}

// PublicSection is a section with its lessons in curriculum order.
type PublicSection struct {
    ID       uint64         `json:"id"`
    Title    string         `json:"title"`
    Position uint32         `json:"position"`
    Lessons  []PublicLesson `json:"lessons"`
}

// GetPublicCourses returns all published courses. Response JSON contains
// an "items" array of PublicCourse.
func (h *PublicHandler) GetPublicCourses(c echo.Context) error {
    ctx := c.Request().Context()
    courses, err := h.CourseRepo.ListPublished(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicCourse, 0, len(courses))
    for _, co := range courses {
        out = append(out, PublicCourse{ID: co.ID, Title: co.Title, Slug: co.Slug})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicCourseBySlug returns one published course with its full
// curriculum (sections and lesson titles). Unpublished courses are
// reported as not found to guests.
func (h *PublicHandler) GetPublicCourseBySlug(c echo.Context) error {
    ctx := c.Request().Context()
    slug := c.Param("slug")
    course, err := h.CourseRepo.GetBySlug(ctx, slug)
    if err != nil {
        if errors.Is(err, repository.ErrCourseNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !course.IsPublished {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
    }
    sections, err := h.SectionRepo.ListByCourse(ctx, course.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    curriculum := make([]PublicSection, 0, len(sections))
    for _, s := range sections {
        lessons, err := h.LessonRepo.ListBySection(ctx, s.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        ps := PublicSection{ID: s.ID, Title: s.Title, Position: s.Position, Lessons: make([]PublicLesson, 0, len(lessons))}
        for _, l := range lessons {
            ps.Lessons = append(ps.Lessons, PublicLesson{
                ID:       l.ID,
                Title:    l.Title,
                Position: l.Position,
                HasMedia: l.MediaPath != nil && *l.MediaPath != "",
            })
        }
        curriculum = append(curriculum, ps)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "course":   PublicCourse{ID: course.ID, Title: course.Title, Slug: course.Slug},
        "sections": curriculum,
    })
}
