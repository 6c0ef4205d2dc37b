// Author-scoped handlers for managing courses, sections, lessons and
// media uploads. Every mutation verifies the ownership chain (lesson ->
// section -> course -> author) before touching anything, so an author can
// never modify another author's content.

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-marketplace/internal/config"
	"github.com/iliyamo/course-marketplace/internal/model"
	"github.com/iliyamo/course-marketplace/internal/repository"
	"github.com/iliyamo/course-marketplace/internal/storage"
	"github.com/iliyamo/course-marketplace/internal/utils"
)

// AuthorHandler bundles the repositories and the object store needed for
// author-side course management.
type AuthorHandler struct {
	Cfg         config.Config
	CourseRepo  *repository.CourseRepo
	SectionRepo *repository.SectionRepo
	LessonRepo  *repository.LessonRepo
	Store       storage.ObjectStore
}

// NewAuthorHandler constructs an AuthorHandler and panics if any dependency is nil.
func NewAuthorHandler(cfg config.Config, courseRepo *repository.CourseRepo, sectionRepo *repository.SectionRepo, lessonRepo *repository.LessonRepo, store storage.ObjectStore) *AuthorHandler {
	if courseRepo == nil || sectionRepo == nil || lessonRepo == nil || store == nil {
		panic("nil dependency passed to NewAuthorHandler")
	}
	return &AuthorHandler{
		Cfg:         cfg,
		CourseRepo:  courseRepo,
		SectionRepo: sectionRepo,
		LessonRepo:  lessonRepo,
		Store:       store,
	}
}

// courseJSON shapes a course for API responses.
type courseJSON struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"is_published"`
}

func toCourseJSON(co model.Course) courseJSON {
	return courseJSON{ID: co.ID, Title: co.Title, Slug: co.Slug, IsPublished: co.IsPublished}
}

// CreateCourse handles POST /v1/courses. The slug is derived from the
// title; a taken slug is reported as a conflict rather than silently
// producing duplicates.
func (h *AuthorHandler) CreateCourse(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	slug := utils.Slugify(title)
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must contain letters or digits"})
	}
	course := &model.Course{AuthorID: authorID, Title: title, Slug: slug}
	if err := h.CourseRepo.Create(c.Request().Context(), course); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "course slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create course"})
	}
	return c.JSON(http.StatusCreated, toCourseJSON(*course))
}

// UpdateCourse handles PATCH /v1/courses/:id and renames a course.
func (h *AuthorHandler) UpdateCourse(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if err := h.CourseRepo.UpdateTitle(c.Request().Context(), id, authorID, title); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, _ := h.CourseRepo.GetByID(c.Request().Context(), id)
	return c.JSON(http.StatusOK, toCourseJSON(updated))
}

// PublishCourse handles POST /v1/courses/:id/publish. Publishing an
// already-published course succeeds.
func (h *AuthorHandler) PublishCourse(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.CourseRepo.SetPublished(c.Request().Context(), id, authorID, true); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "publish failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"published": true})
}

// ListCourses handles GET /v1/courses and returns courses owned by the caller.
func (h *AuthorHandler) ListCourses(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.CourseRepo.ListByAuthor(c.Request().Context(), authorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]courseJSON, 0, len(items))
	for _, co := range items {
		out = append(out, toCourseJSON(co))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateSection handles POST /v1/courses/:id/sections.
func (h *AuthorHandler) CreateSection(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title    string `json:"title"`
		Position uint32 `json:"position"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	// Ownership check: the section can only be added to the author's own course.
	if _, err := h.CourseRepo.GetByIDAndAuthor(c.Request().Context(), courseID, authorID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	section := &model.Section{CourseID: courseID, Title: title, Position: body.Position}
	if err := h.SectionRepo.Create(c.Request().Context(), section); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create section"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":        section.ID,
		"course_id": section.CourseID,
		"title":     section.Title,
		"position":  section.Position,
	})
}

// CreateLesson handles POST /v1/sections/:id/lessons.
func (h *AuthorHandler) CreateLesson(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sectionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title    string `json:"title"`
		Position uint32 `json:"position"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if err := h.requireSectionOwner(c, sectionID, authorID); err != nil {
		return err
	}
	lesson := &model.Lesson{SectionID: sectionID, Title: title, Position: body.Position}
	if err := h.LessonRepo.Create(c.Request().Context(), lesson); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create lesson"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         lesson.ID,
		"section_id": lesson.SectionID,
		"title":      lesson.Title,
		"position":   lesson.Position,
	})
}

// CreateUploadURL handles POST /v1/lessons/:id/upload-url. It issues a
// short-lived signed PUT URL for the lesson's media object and stores the
// media path on the lesson. Only the owning author may request one.
func (h *AuthorHandler) CreateUploadURL(c echo.Context) error {
	authorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lessonID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Filename string `json:"filename"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	filename := sanitizeFilename(body.Filename)
	if filename == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "filename is required"})
	}

	ctx := c.Request().Context()
	ref, err := h.LessonRepo.GetCourseRef(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	courseID, ok := ref.CourseID()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
	}
	course, err := h.CourseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if course.AuthorID != authorID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	path := fmt.Sprintf("courses/%d/lessons/%d/%s", courseID, lessonID, filename)
	ttl := time.Duration(h.Cfg.UploadURLTTLMin) * time.Minute
	url, err := h.Store.SignedUploadURL(ctx, path, ttl)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.LessonRepo.SetMediaPath(ctx, lessonID, path); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store media path"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"url":        url,
		"path":       path,
		"expires_in": int(ttl / time.Second),
	})
}

// requireSectionOwner verifies that the section belongs to a course owned
// by the given author. Writes an error response and returns it when the
// check fails; returns nil when the caller may proceed.
func (h *AuthorHandler) requireSectionOwner(c echo.Context, sectionID, authorID uint64) error {
	section, err := h.SectionRepo.GetByID(c.Request().Context(), sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.CourseRepo.GetByIDAndAuthor(c.Request().Context(), section.CourseID, authorID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return nil
}

// sanitizeFilename keeps letters, digits, dots, underscores and hyphens
// so user-supplied names cannot traverse the object hierarchy.
func sanitizeFilename(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".")
}
