package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// StudentRepo reads and replaces the exam roster.
type StudentRepo struct {
	db *sql.DB
}

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{db: db} }

const studentColumns = `id, register_number, name, department, subject, uploaded_at`

// ReplaceAll deletes every student and inserts the given roster in one
// transaction.  An upload is a full overwrite, never a merge.
func (r *StudentRepo) ReplaceAll(ctx context.Context, students []model.Student) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return 0, fmt.Errorf("clear roster: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO students (register_number, name, department, subject, uploaded_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, s := range students {
		if _, err := stmt.ExecContext(ctx, s.RegisterNumber, s.Name, s.Department, s.Subject, now); err != nil {
			return 0, fmt.Errorf("insert student %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(students), nil
}

// List returns every student ordered by register number.
func (r *StudentRepo) List(ctx context.Context) ([]model.Student, error) {
	return r.query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY register_number, id`)
}

// ListBySubject returns students whose subject matches ignoring case and
// surrounding whitespace, in upload order.
func (r *StudentRepo) ListBySubject(ctx context.Context, subject string) ([]model.Student, error) {
	return r.query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE LOWER(TRIM(subject)) = LOWER(TRIM(?)) ORDER BY id`,
		subject)
}

// DeleteByID removes one student.  It returns ErrStudentNotFound when
// nothing was deleted.
func (r *StudentRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Count returns the roster size.
func (r *StudentRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}

func (r *StudentRepo) query(ctx context.Context, q string, args ...any) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.RegisterNumber, &s.Name, &s.Department, &s.Subject, &s.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// errNoRows maps sql.ErrNoRows to the given sentinel.
func errNoRows(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}
