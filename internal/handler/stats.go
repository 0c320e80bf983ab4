package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Counter is implemented by every repository that can count its rows.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type StatsHandler struct {
	Students, Halls, Plans Counter
}

func NewStatsHandler(students, halls, plans Counter) *StatsHandler {
	return &StatsHandler{Students: students, Halls: halls, Plans: plans}
}

// Dashboard handles GET /v1/stats/dashboard.
func (h *StatsHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	var counts [3]int
	for i, src := range []Counter{h.Students, h.Halls, h.Plans} {
		n, err := src.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
		}
		counts[i] = n
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_students": counts[0],
		"total_halls":    counts[1],
		"total_plans":    counts[2],
	})
}
