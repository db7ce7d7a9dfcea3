package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Status  int          `json:"status"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new client-role account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Status:  http.StatusOK,
		Message: "account created",
	})
}

// Login verifies credentials, bumps the login counter, and issues a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Status: http.StatusOK,
		Token:  token,
		User:   user,
	})
}

// Profile returns the caller's freshly resolved user record.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Param        token  header    string  true  "Session token"
// @Success      200    {object}  authResponse
// @Failure      401    {object}  map[string]any
// @Failure      410    {object}  map[string]any
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Status: http.StatusOK,
		User:   user,
	})
}
