package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything Health can probe with a context, such as *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Health answers load balancer probes and reports 503 when the database
// does not answer.  With ?deep=1 it also probes the allocation service,
// which plan reads and exports do not need.
func Health(db, allocator Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status, code := echo.Map{"status": "ok", "database": "up"}, http.StatusOK
		if db != nil && db.PingContext(ctx) != nil {
			status["status"], status["database"], code = "degraded", "down", http.StatusServiceUnavailable
		}
		if c.QueryParam("deep") == "1" && allocator != nil {
			status["allocator"] = "up"
			if allocator.PingContext(ctx) != nil {
				status["status"], status["allocator"], code = "degraded", "down", http.StatusServiceUnavailable
			}
		}
		return c.JSON(code, status)
	}
}
