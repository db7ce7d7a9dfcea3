package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/api/middleware"
	"github.com/streetlab/storefront-api/internal/core/domain"
)

// currentUser extracts the user resolved by the Session middleware. A nil
// user means the middleware did not run on this route; failing with the
// missing-token error keeps the response envelope consistent.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrTokenMissing
	}
	return user, nil
}
