package seating

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
)

// OverridePlan replaces the whole arrangement of a stored plan.  Halls
// are re-read from the hall store because their shape may have changed
// since the plan was generated.  The stored plan is written once, and
// only when every hall passes validation.  Exam date, subject, status
// and generation time are kept; TotalStudents becomes the new seated
// count.
func (s *Service) OverridePlan(ctx context.Context, id string, arrangement []model.HallAllocation) (*model.SeatingPlan, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	halls := make(map[uint64]model.Hall, len(arrangement))
	for _, a := range arrangement {
		if _, ok := halls[a.HallID]; ok {
			continue
		}
		h, err := s.Halls.GetByID(ctx, a.HallID)
		if err != nil {
			if errors.Is(err, repository.ErrHallNotFound) {
				continue
			}
			return nil, fmt.Errorf("load hall %d: %w", a.HallID, err)
		}
		halls[a.HallID] = *h
	}
	lookup := func(id uint64) (model.Hall, bool) {
		h, ok := halls[id]
		return h, ok
	}
	if err := validateArrangement(arrangement, lookup); err != nil {
		return nil, err
	}

	next := normalizeArrangement(arrangement, lookup)
	total := model.CountSeats(next)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.Plans.UpdateArrangement(ctx, id, next, total); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("save plan: %w", err)
	}
	plan.Arrangement = next
	plan.TotalStudents = total
	return plan, nil
}
