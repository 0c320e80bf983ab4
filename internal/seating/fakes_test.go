package seating

import (
	"context"
	"strconv"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
)

// fakeRoster returns every student it holds whatever the subject, so the
// service's own matching is what decides who is submitted.
type fakeRoster struct {
	students []model.Student
	calls    int
}

func (f *fakeRoster) ListBySubject(context.Context, string) ([]model.Student, error) {
	f.calls++
	return append([]model.Student(nil), f.students...), nil
}

type fakeHalls struct {
	halls []model.Hall
}

func (f *fakeHalls) ListActive(context.Context) ([]model.Hall, error) {
	var out []model.Hall
	for _, h := range f.halls {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHalls) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	for _, h := range f.halls {
		if h.ID == id {
			h := h
			return &h, nil
		}
	}
	return nil, repository.ErrHallNotFound
}

// fakePlans keeps plans by value so callers cannot mutate stored state.
type fakePlans struct {
	plans   map[string]model.SeatingPlan
	creates int
	updates int
	nextID  int
}

func newFakePlans() *fakePlans {
	return &fakePlans{plans: map[string]model.SeatingPlan{}}
}

func (f *fakePlans) Create(_ context.Context, p *model.SeatingPlan) error {
	f.creates++
	f.nextID++
	p.ID = "plan-" + strconv.Itoa(f.nextID)
	cp := *p
	cp.Arrangement = model.CloneArrangement(p.Arrangement)
	f.plans[p.ID] = cp
	return nil
}

func (f *fakePlans) GetByID(_ context.Context, id string) (*model.SeatingPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}
	p.Arrangement = model.CloneArrangement(p.Arrangement)
	return &p, nil
}

func (f *fakePlans) List(context.Context) ([]model.SeatingPlan, error) {
	out := make([]model.SeatingPlan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlans) UpdateArrangement(_ context.Context, id string, arr []model.HallAllocation, total int) error {
	p, ok := f.plans[id]
	if !ok {
		return repository.ErrPlanNotFound
	}
	f.updates++
	p.Arrangement = model.CloneArrangement(arr)
	p.TotalStudents = total
	f.plans[id] = p
	return nil
}

func (f *fakePlans) UpdateStatus(_ context.Context, id string, status model.PlanStatus) error {
	p, ok := f.plans[id]
	if !ok {
		return repository.ErrPlanNotFound
	}
	p.Status = status
	f.plans[id] = p
	return nil
}

// fakeAllocator returns a fixed response, or fills halls row by row when
// fill is set.
type fakeAllocator struct {
	resp  []model.HallAllocation
	err   error
	fill  bool
	limit int // seat at most limit students when filling; 0 means all
	calls int
	got   []model.Student
}

func (f *fakeAllocator) Allocate(_ context.Context, students []model.Student, halls []model.Hall) ([]model.HallAllocation, error) {
	f.calls++
	f.got = students
	if f.err != nil {
		return nil, f.err
	}
	if !f.fill {
		return f.resp, nil
	}
	todo := students
	if f.limit > 0 && f.limit < len(todo) {
		todo = todo[:f.limit]
	}
	var out []model.HallAllocation
	for _, h := range halls {
		a := model.HallAllocation{HallID: h.ID, HallName: h.Name}
		for r := 1; r <= h.Rows && len(todo) > 0; r++ {
			for c := 1; c <= h.Columns && len(todo) > 0 && len(a.Seats) < h.Capacity; c++ {
				st := todo[0]
				todo = todo[1:]
				a.Seats = append(a.Seats, model.SeatAssignment{
					Row: r, Column: c, StudentID: st.ID,
					RegisterNumber: st.RegisterNumber, Name: st.Name, Department: st.Department,
				})
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func students(n int, subject string) []model.Student {
	out := make([]model.Student, n)
	for i := range out {
		out[i] = model.Student{
			ID:             uint64(i + 1),
			RegisterNumber: "S" + strconv.Itoa(i+1),
			Name:           "Student " + strconv.Itoa(i+1),
			Department:     "CSE",
			Subject:        subject,
		}
	}
	return out
}

func hall(id uint64, name string, rows, cols, capacity int) model.Hall {
	return model.Hall{ID: id, Name: name, Rows: rows, Columns: cols, Capacity: capacity, IsActive: true}
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestService(r *fakeRoster, h *fakeHalls, p *fakePlans, a *fakeAllocator) *Service {
	s := NewService(r, h, p, a, render.Options{})
	s.Now = func() time.Time { return fixedNow }
	return s
}
