package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// TokenHeader is the custom request header carrying the bearer token. The
// original clients send the raw token here, not an Authorization header.
const TokenHeader = "token"

// UserContextKey is where the session middleware stores the resolved user.
const UserContextKey = "session_user"

// Session resolves the bearer token to a live user record on every request
// and injects it into the echo context. Resolution always hits the store, so
// downstream role checks never act on stale claims.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return domain.ErrTokenMissing
			}

			user, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
