package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/utils"
)

// AdminRepo stores administrator accounts.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create hashes password and inserts the admin, returning its ID.  Emails
// are stored lower-cased.
func (r *AdminRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (username, email, password_hash) VALUES (?,?,?)",
		strings.TrimSpace(username), email, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	return r.get(ctx, "SELECT id,username,email,password_hash,created_at FROM admins WHERE email=? LIMIT 1", normalizeEmail(email))
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	return r.get(ctx, "SELECT id,username,email,password_hash,created_at FROM admins WHERE id=? LIMIT 1", id)
}

func (r *AdminRepo) get(ctx context.Context, q string, arg any) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return model.Admin{}, errNoRows(err, ErrAdminNotFound)
	}
	return a, nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
