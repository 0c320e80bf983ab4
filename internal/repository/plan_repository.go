package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// PlanRepo stores seating plans.  The arrangement is kept as one JSON
// document so an override replaces it in a single UPDATE.
type PlanRepo struct {
	db *sql.DB
}

func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

const planColumns = `id, exam_date, subject, seating_arrangement, total_students, status, generated_at`

// Create assigns a fresh UUID to p and inserts it.
func (r *PlanRepo) Create(ctx context.Context, p *model.SeatingPlan) error {
	doc, err := encodeArrangement(p.Arrangement)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	const q = `INSERT INTO seating_plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		id, p.ExamDate.Format("2006-01-02"), p.Subject, doc, p.TotalStudents, string(p.Status), p.GeneratedAt.UTC(),
	); err != nil {
		return err
	}
	p.ID = id
	return nil
}

// GetByID loads one plan.  It returns ErrPlanNotFound when the id is
// unknown.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*model.SeatingPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM seating_plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err != nil {
		return nil, errNoRows(err, ErrPlanNotFound)
	}
	return p, nil
}

// List returns all plans, newest first.
func (r *PlanRepo) List(ctx context.Context) ([]model.SeatingPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM seating_plans ORDER BY generated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SeatingPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateArrangement replaces the arrangement and total of a plan.
func (r *PlanRepo) UpdateArrangement(ctx context.Context, id string, arrangement []model.HallAllocation, totalStudents int) error {
	doc, err := encodeArrangement(arrangement)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE seating_plans SET seating_arrangement = ?, total_students = ? WHERE id = ?`,
		doc, totalStudents, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// UpdateStatus sets the status of a plan.
func (r *PlanRepo) UpdateStatus(ctx context.Context, id string, status model.PlanStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE seating_plans SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Count returns the number of stored plans.
func (r *PlanRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seating_plans`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(s rowScanner) (*model.SeatingPlan, error) {
	var (
		p      model.SeatingPlan
		doc    []byte
		status string
	)
	if err := s.Scan(&p.ID, &p.ExamDate, &p.Subject, &doc, &p.TotalStudents, &status, &p.GeneratedAt); err != nil {
		return nil, err
	}
	arr, err := decodeArrangement(doc)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.ID, err)
	}
	p.Arrangement = arr
	p.Status = model.PlanStatus(status)
	p.ExamDate = dateOnly(p.ExamDate)
	return &p, nil
}

func encodeArrangement(arr []model.HallAllocation) ([]byte, error) {
	if arr == nil {
		arr = []model.HallAllocation{}
	}
	b, err := json.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("encode arrangement: %w", err)
	}
	return b, nil
}

func decodeArrangement(b []byte) ([]model.HallAllocation, error) {
	arr := []model.HallAllocation{}
	if len(b) == 0 {
		return arr, nil
	}
	if err := json.Unmarshal(b, &arr); err != nil {
		return nil, fmt.Errorf("decode arrangement: %w", err)
	}
	for i := range arr {
		if arr[i].Seats == nil {
			arr[i].Seats = []model.SeatAssignment{}
		}
	}
	return arr, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
