package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/handler"
	"github.com/iliyamo/exam-seating-planner/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.  Currently
// only the health check.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc) {
	e.GET("/healthz", health)
}

// RegisterAuth registers the account endpoints under /v1/auth.  Register,
// login and refresh are public; logout needs an access token when the
// body carries no refresh token, so it runs behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))
}
