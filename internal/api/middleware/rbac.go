package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// RequireRole gates a route on the resolved user's role, using the single
// domain.RoleAllows predicate. Must run after Session.
func RequireRole(want string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if user == nil {
				return domain.ErrTokenMissing
			}
			if !domain.RoleAllows(user.Role, want) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
