package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// StatusGone (410) flags a token that fails verification — expired, tampered,
// or pointing at a user that no longer exists — as distinct from a missing
// token (401).

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"status": <code>, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Status: code, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "missing token"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusGone, "invalid token"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "user with this email already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "cart item not found"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"
	case errors.Is(err, domain.ErrInvalidTotal):
		return http.StatusBadRequest, "invalid order total"
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict, "checkout already in progress"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
