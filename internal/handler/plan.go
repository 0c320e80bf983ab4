package handler

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/queue"
	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
	"github.com/iliyamo/exam-seating-planner/internal/service"
)

// eventTimeout bounds the best effort publish after a plan change.
const eventTimeout = 5 * time.Second

// PlanHandler exposes the seating workflows.
type PlanHandler struct {
	Seating *seating.Service
	Events  service.EventPublisher
}

func NewPlanHandler(s *seating.Service, ev service.EventPublisher) *PlanHandler {
	if s == nil {
		panic("nil seating service passed to NewPlanHandler")
	}
	if ev == nil {
		ev = service.NopPublisher{}
	}
	return &PlanHandler{Seating: s, Events: ev}
}

type generateReq struct {
	ExamDate string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	Subject  string `json:"subject" validate:"required,max=100"`
}

// overrideReq takes the arrangement under either seating_arrangement or
// seatingArrangement.
type overrideReq struct {
	Arrangement      []model.HallAllocation `json:"seating_arrangement" validate:"required_without=ArrangementCamel"`
	ArrangementCamel []model.HallAllocation `json:"seatingArrangement" validate:"required_without=Arrangement"`
}

func (r overrideReq) arrangement() []model.HallAllocation {
	if r.Arrangement != nil {
		return r.Arrangement
	}
	return r.ArrangementCamel
}

// planView adds the seated count to the stored plan so clients can spot
// an under-filled allocation without summing seats themselves.
type planView struct {
	*model.SeatingPlan
	ExamDate       string `json:"exam_date"`
	SeatedStudents int    `json:"seated_students"`
}

func viewOf(p *model.SeatingPlan) planView {
	return planView{
		SeatingPlan:    p,
		ExamDate:       p.ExamDate.UTC().Format("2006-01-02"),
		SeatedStudents: p.SeatedCount(),
	}
}

// Generate handles POST /v1/seating/generate.
func (h *PlanHandler) Generate(c echo.Context) error {
	var req generateReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	examDate, _ := time.Parse("2006-01-02", req.ExamDate)
	p, err := h.Seating.AssemblePlan(c.Request().Context(), strings.TrimSpace(req.Subject), examDate)
	if err != nil {
		return seatingError(c, err)
	}
	h.publish(queue.EventPlanGenerated, p)
	return c.JSON(http.StatusCreated, viewOf(p))
}

// List handles GET /v1/seating, newest first.
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.Seating.ListPlans(c.Request().Context())
	if err != nil {
		return seatingError(c, err)
	}
	out := make([]planView, 0, len(plans))
	for i := range plans {
		out = append(out, viewOf(&plans[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/seating/:id.
func (h *PlanHandler) Get(c echo.Context) error {
	p, err := h.Seating.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(p))
}

// Export handles GET /v1/seating/:id/export?format=pdf|text.  The
// document is rendered into memory first so a failed render still gets
// a JSON error instead of a truncated download.
func (h *PlanHandler) Export(c echo.Context) error {
	format, err := render.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return seatingError(c, err)
	}
	id := c.Param("id")
	var buf bytes.Buffer
	if err := h.Seating.RenderPlan(c.Request().Context(), id, &buf, format); err != nil {
		return seatingError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=seating-plan-%s.%s", id, format.Extension()))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Override handles PUT /v1/seating/:id/override.
func (h *PlanHandler) Override(c echo.Context) error {
	var req overrideReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	p, err := h.Seating.OverridePlan(c.Request().Context(), c.Param("id"), req.arrangement())
	if err != nil {
		return seatingError(c, err)
	}
	h.publish(queue.EventPlanOverridden, p)
	return c.JSON(http.StatusOK, viewOf(p))
}

// Finalize handles POST /v1/seating/:id/finalize.
func (h *PlanHandler) Finalize(c echo.Context) error {
	p, err := h.Seating.FinalizePlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return seatingError(c, err)
	}
	h.publish(queue.EventPlanFinalized, p)
	return c.JSON(http.StatusOK, viewOf(p))
}

// publish runs after the change is stored; a broker failure is logged by
// the publisher and never reaches the client.
func (h *PlanHandler) publish(typ string, p *model.SeatingPlan) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	if err := h.Events.PublishPlanEvent(ctx, queue.NewPlanEvent(typ, p, time.Now())); err != nil {
		log.Printf("seating: %s event for plan %s dropped: %v", typ, p.ID, err)
	}
}
