package seating

import (
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// AssembleInput carries everything needed to build a plan from an
// allocator response.
type AssembleInput struct {
	Subject     string
	ExamDate    time.Time
	Roster      []model.Student // students submitted to the allocator
	Halls       []model.Hall    // active halls submitted to the allocator
	Allocation  []model.HallAllocation
	GeneratedAt time.Time
}

// Assemble validates an allocator response and builds a draft plan from
// it.  It performs no I/O.  Every seat must belong to a distinct student
// of the submitted roster, and the student fields stored on a seat are
// taken from the roster.  TotalStudents is the submitted roster size even
// when the allocator seated fewer students; compare it with SeatedCount
// to detect an under-filled plan.
func Assemble(in AssembleInput) (*model.SeatingPlan, error) {
	if len(in.Roster) == 0 {
		return nil, ErrEmptyRoster
	}
	if len(in.Halls) == 0 {
		return nil, ErrNoHallsAvailable
	}

	byID := make(map[uint64]model.Hall, len(in.Halls))
	for _, h := range in.Halls {
		byID[h.ID] = h
	}
	lookup := func(id uint64) (model.Hall, bool) {
		h, ok := byID[id]
		return h, ok
	}
	if err := validateArrangement(in.Allocation, lookup); err != nil {
		return nil, err
	}
	arrangement := normalizeArrangement(in.Allocation, lookup)
	if err := seatRoster(arrangement, in.Roster); err != nil {
		return nil, err
	}

	return &model.SeatingPlan{
		ExamDate:      calendarDate(in.ExamDate),
		Subject:       in.Subject,
		Arrangement:   arrangement,
		TotalStudents: len(in.Roster),
		GeneratedAt:   in.GeneratedAt,
		Status:        model.PlanDraft,
	}, nil
}

// seatRoster checks every seat of arrangement against roster and
// overwrites the seat's student fields with the roster record.  The first
// seat naming a student outside the roster, or a student already seated,
// fails the whole arrangement.
func seatRoster(arrangement []model.HallAllocation, roster []model.Student) error {
	byID := make(map[uint64]model.Student, len(roster))
	for _, st := range roster {
		byID[st.ID] = st
	}
	seated := make(map[uint64]struct{}, len(roster))
	for i := range arrangement {
		a := &arrangement[i]
		for j := range a.Seats {
			seat := &a.Seats[j]
			st, ok := byID[seat.StudentID]
			var violation Violation
			if !ok {
				violation = ViolationUnknownStudent
			} else if _, dup := seated[st.ID]; dup {
				violation = ViolationDuplicateStudent
			}
			if violation != "" {
				return &InvalidAllocationError{
					HallID:   a.HallID,
					HallName: a.HallName,
					Err: &GeometryError{
						Violation: violation,
						Row:       seat.Row,
						Column:    seat.Column,
						StudentID: seat.StudentID,
					},
				}
			}
			seated[st.ID] = struct{}{}
			seat.RegisterNumber = st.RegisterNumber
			seat.Name = st.Name
			seat.Department = st.Department
		}
	}
	return nil
}

// normalizeArrangement deep-copies an arrangement, folds repeated entries
// for the same hall into the first one, and takes hall names from the
// hall records rather than from the caller.
func normalizeArrangement(src []model.HallAllocation, lookup func(uint64) (model.Hall, bool)) []model.HallAllocation {
	out := make([]model.HallAllocation, 0, len(src))
	index := make(map[uint64]int, len(src))
	for _, a := range model.CloneArrangement(src) {
		if i, seen := index[a.HallID]; seen {
			out[i].Seats = append(out[i].Seats, a.Seats...)
			continue
		}
		index[a.HallID] = len(out)
		out = append(out, a)
	}
	for i := range out {
		if h, ok := lookup(out[i].HallID); ok {
			out[i].HallName = h.Name
		}
		if out[i].Seats == nil {
			out[i].Seats = []model.SeatAssignment{}
		}
	}
	return out
}

// calendarDate strips the time of day, keeping the date as written in
// t's own location.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
