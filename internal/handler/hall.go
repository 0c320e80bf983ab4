package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
)

// HallStore is the hall storage used by HallHandler.
type HallStore interface {
	Create(ctx context.Context, h *model.Hall) error
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	List(ctx context.Context) ([]model.Hall, error)
	Update(ctx context.Context, h *model.Hall) error
	DeleteByID(ctx context.Context, id uint64) error
}

type HallHandler struct {
	Halls HallStore
}

func NewHallHandler(s HallStore) *HallHandler {
	if s == nil {
		panic("nil store passed to NewHallHandler")
	}
	return &HallHandler{Halls: s}
}

type createHallReq struct {
	Name     string `json:"hall_name" validate:"required,max=100"`
	Rows     int    `json:"rows" validate:"required,min=1,max=500"`
	Columns  int    `json:"columns" validate:"required,min=1,max=500"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	IsActive *bool  `json:"is_active"`
}

// updateHallReq uses pointers so PATCH can tell absent fields from zero.
type updateHallReq struct {
	Name     *string `json:"hall_name" validate:"omitempty,max=100"`
	Rows     *int    `json:"rows" validate:"omitempty,min=1,max=500"`
	Columns  *int    `json:"columns" validate:"omitempty,min=1,max=500"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// checkShape enforces capacity <= rows*columns, which the validator tags
// cannot express.
func checkShape(c echo.Context, h *model.Hall) (bool, error) {
	if h.Capacity > h.GridSize() {
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"error": "capacity cannot exceed rows x columns",
		})
	}
	return true, nil
}

// Create handles POST /v1/halls.
func (h *HallHandler) Create(c echo.Context) error {
	var req createHallReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	hall := &model.Hall{
		Name:     strings.TrimSpace(req.Name),
		Rows:     req.Rows,
		Columns:  req.Columns,
		Capacity: req.Capacity,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if ok, err := checkShape(c, hall); !ok {
		return err
	}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hall"})
	}
	return c.JSON(http.StatusCreated, hall)
}

// List handles GET /v1/halls.
func (h *HallHandler) List(c echo.Context) error {
	halls, err := h.Halls.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch halls"})
	}
	return c.JSON(http.StatusOK, halls)
}

// Get handles GET /v1/halls/:id.
func (h *HallHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hall, err := h.Halls.GetByID(c.Request().Context(), id)
	if err != nil {
		return hallError(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}

// Update handles PUT and PATCH /v1/halls/:id.  Fields missing from the
// body keep their stored value; the merged hall must still satisfy the
// capacity rule.  Plans already generated keep the hall as it was.
func (h *HallHandler) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateHallReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		return hallError(c, err)
	}
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			hall.Name = name
		}
	}
	if req.Rows != nil {
		hall.Rows = *req.Rows
	}
	if req.Columns != nil {
		hall.Columns = *req.Columns
	}
	if req.Capacity != nil {
		hall.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		hall.IsActive = *req.IsActive
	}
	if ok, err := checkShape(c, hall); !ok {
		return err
	}
	if err := h.Halls.Update(ctx, hall); err != nil {
		return hallError(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}

// Delete handles DELETE /v1/halls/:id.
func (h *HallHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Halls.DeleteByID(c.Request().Context(), id); err != nil {
		return hallError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall deleted"})
}

func hallError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrHallNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "hall name already exists"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
