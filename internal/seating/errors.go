// Package seating assembles, validates and corrects exam seating plans.
// It sits between the HTTP handlers and the stores: handlers call the
// Service, the Service talks to the allocator and the repositories
// through small interfaces, and every failure is reported as one of the
// sentinel errors below so handlers can map it to a status code.
package seating

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster is returned when no student matches the subject.
	ErrEmptyRoster = errors.New("no students found for subject")

	// ErrNoHallsAvailable is returned when there is no active hall.
	ErrNoHallsAvailable = errors.New("no halls available")

	// ErrInvalidAllocation is returned when an arrangement breaks a hall's
	// geometry or seats a student the roster does not account for.  The
	// concrete error is an *InvalidAllocationError.
	ErrInvalidAllocation = errors.New("invalid allocation")

	// ErrAllocationService is returned when the external allocator fails
	// or answers with a malformed payload.
	ErrAllocationService = errors.New("allocation service error")

	// ErrPlanNotFound is returned when a plan id does not exist.
	ErrPlanNotFound = errors.New("seating plan not found")

	// ErrInvalidTransition is returned for a status change other than
	// draft -> finalized.
	ErrInvalidTransition = errors.New("invalid plan status transition")
)

// Sentinels for the individual violations.  A *GeometryError unwraps to
// exactly one of them.
var (
	ErrOutOfBounds      = errors.New("seat out of bounds")
	ErrDuplicateSeat    = errors.New("duplicate seat")
	ErrCapacityExceeded = errors.New("hall capacity exceeded")
	ErrUnknownHall      = errors.New("unknown hall")
	ErrUnknownStudent   = errors.New("student not in roster")
	ErrDuplicateStudent = errors.New("student seated twice")
)

// Violation names the kind of geometry rule an arrangement broke.
type Violation string

const (
	ViolationOutOfBounds      Violation = "out_of_bounds"
	ViolationDuplicateSeat    Violation = "duplicate_seat"
	ViolationCapacityExceeded Violation = "capacity_exceeded"
	ViolationUnknownHall      Violation = "unknown_hall"
	ViolationUnknownStudent   Violation = "unknown_student"
	ViolationDuplicateStudent Violation = "duplicate_student"
)

func (v Violation) sentinel() error {
	switch v {
	case ViolationOutOfBounds:
		return ErrOutOfBounds
	case ViolationDuplicateSeat:
		return ErrDuplicateSeat
	case ViolationCapacityExceeded:
		return ErrCapacityExceeded
	case ViolationUnknownHall:
		return ErrUnknownHall
	case ViolationUnknownStudent:
		return ErrUnknownStudent
	case ViolationDuplicateStudent:
		return ErrDuplicateStudent
	}
	return nil
}

// GeometryError describes a single violation found by ValidateGeometry.
// Row and Column identify the offending seat for seat level violations;
// Count and Capacity are set for ViolationCapacityExceeded, StudentID for
// the roster violations.
type GeometryError struct {
	Violation Violation
	Row       int
	Column    int
	Count     int
	Capacity  int
	StudentID uint64
}

func (e *GeometryError) Error() string {
	switch e.Violation {
	case ViolationCapacityExceeded:
		return fmt.Sprintf("%s: %d seats for capacity %d", e.Violation, e.Count, e.Capacity)
	case ViolationUnknownHall:
		return string(e.Violation)
	case ViolationUnknownStudent, ViolationDuplicateStudent:
		return fmt.Sprintf("%s %d at row %d column %d", e.Violation, e.StudentID, e.Row, e.Column)
	}
	return fmt.Sprintf("%s at row %d column %d", e.Violation, e.Row, e.Column)
}

func (e *GeometryError) Unwrap() error { return e.Violation.sentinel() }

// InvalidAllocationError identifies the hall whose allocation failed and
// the violation found in it.  It matches both ErrInvalidAllocation and
// the violation's own sentinel under errors.Is.
type InvalidAllocationError struct {
	HallID   uint64
	HallName string
	Err      *GeometryError
}

func (e *InvalidAllocationError) Error() string {
	return fmt.Sprintf("invalid allocation for hall %d (%s): %v", e.HallID, e.HallName, e.Err)
}

func (e *InvalidAllocationError) Unwrap() []error {
	return []error{ErrInvalidAllocation, e.Err}
}

// Violation returns the kind of rule the hall's allocation broke.
func (e *InvalidAllocationError) Violation() Violation {
	if e.Err == nil {
		return ""
	}
	return e.Err.Violation
}
