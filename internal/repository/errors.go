// Package repository holds the MySQL data access code.  The sentinel
// values below let higher layers tell failure scenarios apart without
// inspecting driver errors: handlers map the not-found errors to 404 and
// ErrDuplicate to 409.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrHallNotFound    = errors.New("hall not found")
	ErrPlanNotFound    = errors.New("seating plan not found")
	ErrAdminNotFound   = errors.New("admin not found")
)

// ErrEmailExists is returned when an admin registers with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when an insert or update violates a unique
// key, such as a second hall with the same name.
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicateKey reports whether err is MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
