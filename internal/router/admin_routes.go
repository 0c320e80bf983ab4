package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/handler"
	"github.com/iliyamo/exam-seating-planner/internal/middleware"
	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// Handlers groups the admin API handlers.
type Handlers struct {
	Students *handler.StudentHandler
	Halls    *handler.HallHandler
	Plans    *handler.PlanHandler
	Stats    *handler.StatsHandler
}

// Middleware holds the Redis backed middlewares.  Any of them may be a
// pass-through when Redis is unavailable.
type Middleware struct {
	RateLimit     echo.MiddlewareFunc
	GenerateLimit echo.MiddlewareFunc // tighter bucket for plan generation
	Cache         echo.MiddlewareFunc
	Purger        echo.MiddlewareFunc
}

// RegisterAdmin registers the ADMIN-scoped endpoints under /v1.  The rate
// limiter runs after JWTAuth so buckets can be keyed per admin.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string, mw Middleware) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
		mw.RateLimit,
		mw.Purger,
		mw.Cache,
	)

	// ---- Students ----
	g.POST("/students/upload", h.Students.Upload)
	g.GET("/students", h.Students.List)
	g.DELETE("/students/:id", h.Students.Delete)

	// ---- Halls ----
	g.POST("/halls", h.Halls.Create)
	g.GET("/halls", h.Halls.List)
	g.GET("/halls/:id", h.Halls.Get)
	g.PUT("/halls/:id", h.Halls.Update)
	g.PATCH("/halls/:id", h.Halls.Update)
	g.DELETE("/halls/:id", h.Halls.Delete)

	// ---- Seating plans ----
	g.POST("/seating/generate", h.Plans.Generate, mw.GenerateLimit)
	g.GET("/seating", h.Plans.List)
	g.GET("/seating/:id", h.Plans.Get)
	g.GET("/seating/:id/export", h.Plans.Export)
	g.PUT("/seating/:id/override", h.Plans.Override)
	g.POST("/seating/:id/finalize", h.Plans.Finalize)

	// ---- Dashboard ----
	g.GET("/stats/dashboard", h.Stats.Dashboard)
}
