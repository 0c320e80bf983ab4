package model

import (
	"encoding/json"
	"time"
)

// PlanStatus is the lifecycle state of a seating plan.  It is a string
// enum rather than a boolean so new states can be added without
// changing the meaning of existing ones.
type PlanStatus string

const (
	// PlanDraft is the state of every freshly assembled plan.
	PlanDraft PlanStatus = "draft"
	// PlanFinalized marks a plan approved by an administrator.
	PlanFinalized PlanStatus = "finalized"
)

// Valid reports whether s is a known status.
func (s PlanStatus) Valid() bool {
	return s == PlanDraft || s == PlanFinalized
}

// CanTransitionTo reports whether a plan in state s may move to next.
// The only allowed transition is draft -> finalized.
func (s PlanStatus) CanTransitionTo(next PlanStatus) bool {
	return s == PlanDraft && next == PlanFinalized
}

// SeatAssignment binds one grid cell to a student.  The student fields
// are a snapshot taken when the plan was built, not a live reference.
type SeatAssignment struct {
	Row            int    `json:"row"`
	Column         int    `json:"column"`
	StudentID      uint64 `json:"student_id"`
	RegisterNumber string `json:"register_number"`
	Name           string `json:"name"`
	Department     string `json:"department"`
}

// UnmarshalJSON also accepts the camelCase keys used on the allocator
// wire (studentId, registerNumber).
func (s *SeatAssignment) UnmarshalJSON(b []byte) error {
	type plain SeatAssignment
	var v struct {
		plain
		StudentIDCamel      *uint64 `json:"studentId"`
		RegisterNumberCamel *string `json:"registerNumber"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = SeatAssignment(v.plain)
	if v.StudentIDCamel != nil {
		s.StudentID = *v.StudentIDCamel
	}
	if v.RegisterNumberCamel != nil {
		s.RegisterNumber = *v.RegisterNumberCamel
	}
	return nil
}

// HallAllocation is the list of seats assigned inside one hall.
type HallAllocation struct {
	HallID   uint64           `json:"hall_id"`
	HallName string           `json:"hall_name"`
	Seats    []SeatAssignment `json:"seats"`
}

// UnmarshalJSON also accepts hallId and hallName.
func (a *HallAllocation) UnmarshalJSON(b []byte) error {
	type plain HallAllocation
	var v struct {
		plain
		HallIDCamel   *uint64 `json:"hallId"`
		HallNameCamel *string `json:"hallName"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = HallAllocation(v.plain)
	if v.HallIDCamel != nil {
		a.HallID = *v.HallIDCamel
	}
	if v.HallNameCamel != nil {
		a.HallName = *v.HallNameCamel
	}
	return nil
}

// SeatingPlan aggregates the hall allocations produced for one exam.
//
// Fields:
//  ID            – UUID primary key.
//  ExamDate      – calendar date of the exam (time of day is ignored).
//  Subject       – subject label the roster was matched on.
//  Arrangement   – ordered hall allocations, owned by the plan.
//  TotalStudents – roster size submitted to the allocator, or the seated
//                  count after an override.
//  GeneratedAt   – when the plan was assembled.
//  Status        – draft or finalized.
type SeatingPlan struct {
	ID            string           `json:"id"`
	ExamDate      time.Time        `json:"exam_date"`
	Subject       string           `json:"subject"`
	Arrangement   []HallAllocation `json:"seating_arrangement"`
	TotalStudents int              `json:"total_students"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Status        PlanStatus       `json:"status"`
}

// SeatedCount returns how many seats are actually assigned across all
// halls.  It can be lower than TotalStudents when the allocator
// under-filled the plan.
func (p *SeatingPlan) SeatedCount() int {
	return CountSeats(p.Arrangement)
}

// CountSeats sums the seats of every allocation.
func CountSeats(arrangement []HallAllocation) int {
	n := 0
	for _, a := range arrangement {
		n += len(a.Seats)
	}
	return n
}

// CloneArrangement returns a deep copy so the caller owns every seat
// slice independently of the source.
func CloneArrangement(src []HallAllocation) []HallAllocation {
	if src == nil {
		return nil
	}
	out := make([]HallAllocation, len(src))
	for i, a := range src {
		out[i] = HallAllocation{HallID: a.HallID, HallName: a.HallName}
		if a.Seats != nil {
			out[i].Seats = append(make([]SeatAssignment, 0, len(a.Seats)), a.Seats...)
		}
	}
	return out
}
