package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streetlab/storefront-api/internal/api/metrics"
	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type CheckoutHandler struct {
	service ports.CheckoutService
}

func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type checkoutItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" validate:"min=1"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items"`
	Total float64               `json:"total"`
}

type checkoutResponse struct {
	Status    int     `json:"status"`
	OrderID   string  `json:"orderId"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"createdAt"`
}

type ordersResponse struct {
	Status int             `json:"status"`
	Orders []*domain.Order `json:"orders"`
}

// Checkout snapshots the submitted cart into an immutable order and clears
// the caller's cart.
//
// @Summary      Checkout the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        token  header    string           true  "Session token"
// @Param        body   body      checkoutRequest  true  "Cart snapshot and total"
// @Success      200    {object}  checkoutResponse
// @Failure      400    {object}  map[string]any
// @Failure      409    {object}  map[string]any
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	for _, it := range req.Items {
		if err := c.Validate(&it); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	timer := prometheus.NewTimer(metrics.CheckoutDuration)
	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID: user.ID,
		Items:  items,
		Total:  req.Total,
	})
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderRevenueTotal.Add(result.Total)

	return c.JSON(http.StatusOK, checkoutResponse{
		Status:    http.StatusOK,
		OrderID:   result.OrderID,
		Total:     result.Total,
		CreatedAt: result.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// History returns the caller's past orders, newest first.
//
// @Summary      Order history
// @Tags         checkout
// @Produce      json
// @Param        token  header    string  true  "Session token"
// @Success      200    {object}  ordersResponse
// @Router       /orders/history [get]
func (h *CheckoutHandler) History(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	orders, err := h.service.History(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ordersResponse{Status: http.StatusOK, Orders: orders})
}
