package router

import (
	"github.com/iliyamo/course-marketplace/internal/handler"
	"github.com/iliyamo/course-marketplace/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterStudent registers student-scoped endpoints under /v1.  All routes
// require a valid JWT and the STUDENT role.  Students can enroll in
// courses, track per-lesson progress and fetch signed lesson-media URLs.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STUDENT"),
	)
	// Note: course catalog browsing is registered on the public router so
	// that guests can inspect published courses.  Student-specific
	// endpoints begin here.
	g.POST("/courses/:id/enroll", h.Enroll)
	g.POST("/lessons/:id/complete", h.MarkComplete)
	g.GET("/my-enrollments", h.MyEnrollments)
	g.GET("/courses/:id/progress", h.CourseProgress)

	// Media resolution is open to both roles: authors reach their own
	// lessons through the owner bypass, students through enrollment.
	media := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("AUTHOR", "STUDENT"),
	)
	media.GET("/lessons/:id/media", h.LessonMedia)
}
