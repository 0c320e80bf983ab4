package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	ContextAdminID = "admin_id"
	ContextRole    = "role"
)

// AdminID returns the authenticated admin id stored by JWTAuth.
func AdminID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ContextAdminID).(uint64)
	return id, ok
}

// identityKey returns the admin id as a string for cache and rate limit
// keys, or "anon" for unauthenticated requests.
func identityKey(c echo.Context) string {
	if id, ok := AdminID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
