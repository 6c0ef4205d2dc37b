package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/course-marketplace/internal/handler"    // author handlers
	"github.com/iliyamo/course-marketplace/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterAuthor registers AUTHOR-scoped endpoints under /v1.
// All routes require a valid JWT and AUTHOR role.
func RegisterAuthor(e *echo.Echo, a *handler.AuthorHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("AUTHOR"),
	)

	// ---- Courses ----
	g.POST("/courses", a.CreateCourse)
	g.GET("/courses", a.ListCourses)
	g.PATCH("/courses/:id", a.UpdateCourse)
	g.POST("/courses/:id/publish", a.PublishCourse)

	// ---- Curriculum ----
	g.POST("/courses/:id/sections", a.CreateSection)
	g.POST("/sections/:id/lessons", a.CreateLesson)

	// ---- Media ----
	// Issues a signed PUT URL for the lesson's media object and records
	// the object key on the lesson row.
	g.POST("/lessons/:id/upload-url", a.CreateUploadURL)
}
