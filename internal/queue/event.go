// Package queue defines the plan lifecycle events exchanged over RabbitMQ
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// Event types.
const (
	EventPlanGenerated  = "plan.generated"
	EventPlanOverridden = "plan.overridden"
	EventPlanFinalized  = "plan.finalized"
)

// PlanEvent is published after a plan change has been persisted.  It
// carries enough to log or notify without querying the database.
type PlanEvent struct {
	Type           string   `json:"type"`
	PlanID         string   `json:"plan_id"`
	Subject        string   `json:"subject"`
	ExamDate       string   `json:"exam_date"`
	Status         string   `json:"status"`
	TotalStudents  int      `json:"total_students"`
	SeatedStudents int      `json:"seated_students"`
	Halls          []string `json:"halls"`
	OccurredAt     string   `json:"occurred_at"`
}

// NewPlanEvent snapshots p.
func NewPlanEvent(typ string, p *model.SeatingPlan, at time.Time) PlanEvent {
	halls := make([]string, 0, len(p.Arrangement))
	for _, a := range p.Arrangement {
		halls = append(halls, a.HallName)
	}
	return PlanEvent{
		Type:           typ,
		PlanID:         p.ID,
		Subject:        p.Subject,
		ExamDate:       p.ExamDate.Format("2006-01-02"),
		Status:         string(p.Status),
		TotalStudents:  p.TotalStudents,
		SeatedStudents: p.SeatedCount(),
		Halls:          halls,
		OccurredAt:     at.UTC().Format(time.RFC3339),
	}
}
