package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/course-marketplace/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/course-marketplace/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login
	// and the two refresh variants.  Each handler is responsible for
	// generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token and returns a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` (single
	// session) or a bearer token (all sessions) and invalidates the
	// matching refresh tokens.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token live under /v1.  Both
	// AUTHOR and STUDENT roles are accepted here; role-specific groups are
	// registered separately.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("AUTHOR", "STUDENT"))
	auth.GET("/me", a.Me)

	// Top-level logout alias so clients can terminate a session with only
	// a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated catalog endpoints on the provided
// Echo instance.  The PublicHandler exposes sanitized data for published
// courses.  These routes do not apply any JWT or role middleware and are
// intended for guest users.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// List all published courses
	e.GET("/v1/catalog/courses", p.GetPublicCourses)
	// Course detail with full curriculum (section and lesson titles only;
	// media paths are never exposed here)
	e.GET("/v1/catalog/courses/:slug", p.GetPublicCourseBySlug)
}
