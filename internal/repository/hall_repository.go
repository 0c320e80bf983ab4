package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// HallRepo provides CRUD access to exam halls.  seat_rows and seat_cols
// hold the grid shape; capacity is stored separately because a hall may
// be declared smaller than its grid.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallColumns = `id, hall_name, seat_rows, seat_cols, capacity, is_active, created_at, updated_at`

// Create inserts a new hall and reads it back so the timestamps are set.
// A duplicate name yields ErrDuplicate.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO exam_halls (hall_name, seat_rows, seat_cols, capacity, is_active) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Rows, h.Columns, h.Capacity, h.IsActive)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	var h model.Hall
	err := r.db.QueryRowContext(ctx, `SELECT `+hallColumns+` FROM exam_halls WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Rows, &h.Columns, &h.Capacity, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, errNoRows(err, ErrHallNotFound)
	}
	return &h, nil
}

// List returns every hall ordered by id.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	return r.query(ctx, `SELECT `+hallColumns+` FROM exam_halls ORDER BY id`)
}

// ListActive returns the halls offered to the allocator, ordered by id.
func (r *HallRepo) ListActive(ctx context.Context) ([]model.Hall, error) {
	return r.query(ctx, `SELECT `+hallColumns+` FROM exam_halls WHERE is_active = 1 ORDER BY id`)
}

// Update overwrites the editable fields of a hall.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	const q = `UPDATE exam_halls
               SET hall_name = ?, seat_rows = ?, seat_cols = ?, capacity = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Rows, h.Columns, h.Capacity, h.IsActive, h.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// DeleteByID removes a hall.  Stored plans keep their hall snapshot, so
// nothing else needs to change.
func (r *HallRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_halls WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// Count returns the number of halls.
func (r *HallRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exam_halls`).Scan(&n)
	return n, err
}

func (r *HallRepo) query(ctx context.Context, q string, args ...any) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Hall{}
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.Columns, &h.Capacity, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
