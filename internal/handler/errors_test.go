package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
)

func TestSeatingErrorStatus(t *testing.T) {
	invalid := &seating.InvalidAllocationError{
		HallID: 2, HallName: "B",
		Err: &seating.GeometryError{Violation: seating.ViolationOutOfBounds, Row: 9, Column: 1},
	}
	tests := []struct {
		err  error
		want int
	}{
		{invalid, http.StatusUnprocessableEntity},
		{seating.ErrEmptyRoster, http.StatusBadRequest},
		{seating.ErrNoHallsAvailable, http.StatusBadRequest},
		{fmt.Errorf("%w: timeout", seating.ErrAllocationService), http.StatusBadGateway},
		{seating.ErrPlanNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: finalized -> finalized", seating.ErrInvalidTransition), http.StatusConflict},
		{render.ErrUnknownFormat, http.StatusBadRequest},
		{fmt.Errorf("%w: broken pipe", render.ErrRender), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("save plan: boom"), http.StatusInternalServerError},
	}
	e := newEcho()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := seatingError(c, tt.err); err != nil {
			t.Fatalf("%v: %v", tt.err, err)
		}
		if rec.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}
