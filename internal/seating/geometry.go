package seating

import "github.com/iliyamo/exam-seating-planner/internal/model"

type cell struct{ row, col int }

// ValidateGeometry checks the seats claimed for a hall against its shape
// and capacity.  It returns nil or a *GeometryError.  Capacity is checked
// first, then every seat in list order: bounds before duplicates.
func ValidateGeometry(h model.Hall, seats []model.SeatAssignment) error {
	if len(seats) > h.Capacity {
		return &GeometryError{
			Violation: ViolationCapacityExceeded,
			Count:     len(seats),
			Capacity:  h.Capacity,
		}
	}
	taken := make(map[cell]struct{}, len(seats))
	for _, s := range seats {
		if s.Row < 1 || s.Row > h.Rows || s.Column < 1 || s.Column > h.Columns {
			return &GeometryError{Violation: ViolationOutOfBounds, Row: s.Row, Column: s.Column}
		}
		k := cell{s.Row, s.Column}
		if _, dup := taken[k]; dup {
			return &GeometryError{Violation: ViolationDuplicateSeat, Row: s.Row, Column: s.Column}
		}
		taken[k] = struct{}{}
	}
	return nil
}

// validateArrangement runs ValidateGeometry over every hall of an
// arrangement, resolving halls through lookup.  A hall listed more than
// once is validated on the union of its seat lists.  The first failure,
// in order of first appearance, is returned as an *InvalidAllocationError.
func validateArrangement(arrangement []model.HallAllocation, lookup func(uint64) (model.Hall, bool)) error {
	order := make([]uint64, 0, len(arrangement))
	names := make(map[uint64]string, len(arrangement))
	seats := make(map[uint64][]model.SeatAssignment, len(arrangement))
	for _, a := range arrangement {
		if _, seen := seats[a.HallID]; !seen {
			order = append(order, a.HallID)
			names[a.HallID] = a.HallName
		}
		seats[a.HallID] = append(seats[a.HallID], a.Seats...)
	}
	for _, id := range order {
		h, ok := lookup(id)
		if !ok {
			return &InvalidAllocationError{
				HallID:   id,
				HallName: names[id],
				Err:      &GeometryError{Violation: ViolationUnknownHall},
			}
		}
		if err := ValidateGeometry(h, seats[id]); err != nil {
			return &InvalidAllocationError{HallID: h.ID, HallName: h.Name, Err: err.(*GeometryError)}
		}
	}
	return nil
}

// ValidateArrangement checks arrangement against a fixed set of halls,
// as the offline tooling does with a halls export.
func ValidateArrangement(arrangement []model.HallAllocation, halls []model.Hall) error {
	byID := make(map[uint64]model.Hall, len(halls))
	for _, h := range halls {
		byID[h.ID] = h
	}
	return validateArrangement(arrangement, func(id uint64) (model.Hall, bool) {
		h, ok := byID[id]
		return h, ok
	})
}
