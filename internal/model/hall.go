package model

import "time"

// Hall represents an exam hall laid out as a rectangular grid of
// Rows x Columns seats.  Capacity is the number of students the hall
// may take for one exam and must not exceed Rows*Columns; the grid
// itself does not enforce that, only the declared value does.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique hall name.
//  Rows      – number of seating rows (R).
//  Columns   – number of seats per row (C).
//  Capacity  – maximum number of students seated in the hall.
//  IsActive  – whether the hall is offered to the allocator.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
    ID        uint64    `json:"id"`         // exam_halls.id
    Name      string    `json:"hall_name"`  // exam_halls.hall_name
    Rows      int       `json:"rows"`       // exam_halls.seat_rows
    Columns   int       `json:"columns"`    // exam_halls.seat_cols
    Capacity  int       `json:"capacity"`   // exam_halls.capacity
    IsActive  bool      `json:"is_active"`  // exam_halls.is_active
    CreatedAt time.Time `json:"created_at"` // exam_halls.created_at
    UpdatedAt time.Time `json:"updated_at"` // exam_halls.updated_at
}

// GridSize returns the number of cells in the hall grid.
func (h Hall) GridSize() int { return h.Rows * h.Columns }
