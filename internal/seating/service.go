package seating

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
)

// RosterReader reads the student roster.
type RosterReader interface {
	ListBySubject(ctx context.Context, subject string) ([]model.Student, error)
}

// HallReader reads exam halls.  GetByID returns repository.ErrHallNotFound
// for unknown ids.
type HallReader interface {
	ListActive(ctx context.Context) ([]model.Hall, error)
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// PlanStore persists seating plans.  Lookups and updates of unknown ids
// return repository.ErrPlanNotFound.
type PlanStore interface {
	Create(ctx context.Context, p *model.SeatingPlan) error
	GetByID(ctx context.Context, id string) (*model.SeatingPlan, error)
	List(ctx context.Context) ([]model.SeatingPlan, error)
	UpdateArrangement(ctx context.Context, id string, arrangement []model.HallAllocation, totalStudents int) error
	UpdateStatus(ctx context.Context, id string, status model.PlanStatus) error
}

// Allocator is the external seat allocation service.
type Allocator interface {
	Allocate(ctx context.Context, students []model.Student, halls []model.Hall) ([]model.HallAllocation, error)
}

// Service runs the seating plan workflows.  Each call is sequential and
// keeps no state between requests.
type Service struct {
	Roster    RosterReader
	Halls     HallReader
	Plans     PlanStore
	Allocator Allocator
	Render    render.Options
	Now       func() time.Time
}

// NewService wires a Service and panics if a dependency is nil.
func NewService(roster RosterReader, halls HallReader, plans PlanStore, alloc Allocator, opts render.Options) *Service {
	if roster == nil || halls == nil || plans == nil || alloc == nil {
		panic("nil dependency passed to seating.NewService")
	}
	return &Service{
		Roster:    roster,
		Halls:     halls,
		Plans:     plans,
		Allocator: alloc,
		Render:    opts,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// AssemblePlan generates a new draft plan for subject: it loads the
// matching roster and the active halls, asks the allocator for an
// arrangement, validates it and persists the result.  Nothing is written
// unless every hall passes validation.
func (s *Service) AssemblePlan(ctx context.Context, subject string, examDate time.Time) (*model.SeatingPlan, error) {
	subject = strings.TrimSpace(subject)
	roster, err := s.Roster.ListBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	roster = matchSubject(roster, subject)
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	halls, err := s.Halls.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load halls: %w", err)
	}
	halls = activeOnly(halls)
	if len(halls) == 0 {
		return nil, ErrNoHallsAvailable
	}

	allocation, err := s.Allocator.Allocate(ctx, roster, halls)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationService, err)
	}

	plan, err := Assemble(AssembleInput{
		Subject:     subject,
		ExamDate:    examDate,
		Roster:      roster,
		Halls:       halls,
		Allocation:  allocation,
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

// GetPlan loads a plan by id.
func (s *Service) GetPlan(ctx context.Context, id string) (*model.SeatingPlan, error) {
	p, err := s.Plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListPlans returns every plan, newest first.
func (s *Service) ListPlans(ctx context.Context) ([]model.SeatingPlan, error) {
	return s.Plans.List(ctx)
}

// FinalizePlan moves a draft plan to finalized.
func (s *Service) FinalizePlan(ctx context.Context, id string) (*model.SeatingPlan, error) {
	p, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(model.PlanFinalized) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, model.PlanFinalized)
	}
	if err := s.Plans.UpdateStatus(ctx, id, model.PlanFinalized); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	p.Status = model.PlanFinalized
	return p, nil
}

// RenderPlan writes the printable document of a stored plan to w.
func (s *Service) RenderPlan(ctx context.Context, id string, w io.Writer, format render.Format) error {
	p, err := s.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	return render.Write(w, p, format, s.Render)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

// matchSubject keeps students whose subject equals subject ignoring case
// and surrounding whitespace.
func matchSubject(roster []model.Student, subject string) []model.Student {
	want := strings.TrimSpace(subject)
	out := roster[:0:0]
	for _, st := range roster {
		if strings.EqualFold(strings.TrimSpace(st.Subject), want) {
			out = append(out, st)
		}
	}
	return out
}

func activeOnly(halls []model.Hall) []model.Hall {
	out := halls[:0:0]
	for _, h := range halls {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out
}
