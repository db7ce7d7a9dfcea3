package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/api/metrics"
	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	Quantity int `json:"quantity"` // optional, defaults to 1
}

type cartResponse struct {
	Status int                `json:"status"`
	Cart   []*domain.CartLine `json:"cart"`
}

type cartMessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Add puts a product in the caller's cart, merging repeat adds into the
// existing line.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        token      header    string            true   "Session token"
// @Param        productId  path      string            true   "Product ID"
// @Param        body       body      addToCartRequest  false  "Quantity (defaults to 1)"
// @Success      200        {object}  cartMessageResponse
// @Failure      404        {object}  map[string]any
// @Router       /cart/{productId} [post]
func (h *CartHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}

	if err := h.service.Add(c.Request().Context(), user.ID, c.Param("productId"), req.Quantity); err != nil {
		return err
	}

	metrics.CartAddsTotal.Inc()

	return c.JSON(http.StatusOK, cartMessageResponse{
		Status:  http.StatusOK,
		Message: "product added to cart",
	})
}

// Get returns the caller's cart joined with live product data.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Param        token  header    string  true  "Session token"
// @Success      200    {object}  cartResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	lines, err := h.service.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse{Status: http.StatusOK, Cart: lines})
}

// Remove decrements a cart line by one, deleting it at quantity zero.
//
// @Summary      Remove one unit of a cart line
// @Tags         cart
// @Produce      json
// @Param        token  header    string  true  "Session token"
// @Param        id     path      string  true  "Cart line ID"
// @Success      200    {object}  cartMessageResponse
// @Failure      403    {object}  map[string]any
// @Failure      404    {object}  map[string]any
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartMessageResponse{
		Status:  http.StatusOK,
		Message: "cart item removed",
	})
}
