package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
)

// seatingError writes the response for an error returned by the seating
// service.
func seatingError(c echo.Context, err error) error {
	var invalid *seating.InvalidAllocationError
	switch {
	case errors.As(err, &invalid):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":     "invalid allocation",
			"hall_id":   invalid.HallID,
			"hall_name": invalid.HallName,
			"violation": invalid.Violation(),
			"detail":    invalid.Err.Error(),
		})
	case errors.Is(err, seating.ErrEmptyRoster):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no students found"})
	case errors.Is(err, seating.ErrNoHallsAvailable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no halls available"})
	case errors.Is(err, seating.ErrAllocationService):
		log.Printf("seating: allocator failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "allocation service unavailable"})
	case errors.Is(err, seating.ErrPlanNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seating plan not found"})
	case errors.Is(err, seating.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, render.ErrUnknownFormat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "format must be pdf or text"})
	case errors.Is(err, render.ErrRender):
		log.Printf("seating: render failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "request timed out"})
	}
	log.Printf("seating: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// paramID parses a numeric :id path parameter.
func paramID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
