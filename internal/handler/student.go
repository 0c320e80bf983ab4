package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
	"github.com/iliyamo/exam-seating-planner/internal/roster"
)

// maxRosterBytes bounds an uploaded roster file.
const maxRosterBytes = 10 << 20

// StudentStore is the roster storage used by StudentHandler.
type StudentStore interface {
	ReplaceAll(ctx context.Context, students []model.Student) (int, error)
	List(ctx context.Context) ([]model.Student, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type StudentHandler struct {
	Students StudentStore
}

func NewStudentHandler(s StudentStore) *StudentHandler {
	if s == nil {
		panic("nil store passed to NewStudentHandler")
	}
	return &StudentHandler{Students: s}
}

// Upload handles POST /v1/students/upload.  The roster comes as a
// multipart "file" field or as a raw text/csv body and replaces the
// whole student table.
func (h *StudentHandler) Upload(c echo.Context) error {
	var src io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
		}
		defer f.Close()
		src = f
	} else if ct := c.Request().Header.Get(echo.HeaderContentType); ct == "text/csv" || ct == "text/plain" {
		src = c.Request().Body
	} else {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	students, err := roster.ParseCSV(io.LimitReader(src, maxRosterBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	n, err := h.Students.ReplaceAll(c.Request().Context(), students)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "students uploaded", "count": n})
}

// List handles GET /v1/students.
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.Students.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch students"})
	}
	return c.JSON(http.StatusOK, students)
}

// Delete handles DELETE /v1/students/:id.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Students.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student deleted"})
}
