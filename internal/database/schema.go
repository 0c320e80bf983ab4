package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables in creation order.  Statements are idempotent so
// Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(100) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS admin_refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		admin_id   BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_refresh_admin (admin_id),
		CONSTRAINT fk_refresh_admin FOREIGN KEY (admin_id) REFERENCES admins(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS students (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		register_number VARCHAR(64)  NOT NULL,
		name            VARCHAR(255) NOT NULL,
		department      VARCHAR(100) NOT NULL,
		subject         VARCHAR(255) NOT NULL,
		uploaded_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_students_subject (subject)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS exam_halls (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		hall_name  VARCHAR(100) NOT NULL UNIQUE,
		seat_rows  INT NOT NULL,
		seat_cols  INT NOT NULL,
		capacity   INT NOT NULL,
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seating_plans (
		id                  CHAR(36) PRIMARY KEY,
		exam_date           DATE NOT NULL,
		subject             VARCHAR(255) NOT NULL,
		seating_arrangement JSON NOT NULL,
		total_students      INT NOT NULL,
		status              VARCHAR(16) NOT NULL DEFAULT 'draft',
		generated_at        DATETIME(3) NOT NULL,
		INDEX idx_plans_generated (generated_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing table.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
