package ports

import (
	"context"
	"time"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// OrderItemInput is one submitted cart line at checkout.
type OrderItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// CheckoutInput carries the caller's view of the cart and the total. The
// total is trusted as submitted; see the checkout service for the sequencing
// guarantees around order creation and cart clearing.
type CheckoutInput struct {
	UserID string
	Items  []OrderItemInput
	Total  float64
}

// CheckoutResult is returned after a successful checkout.
type CheckoutResult struct {
	OrderID   string
	Total     float64
	CreatedAt time.Time
}

// CheckoutService converts a cart into an immutable order and clears the
// cart, and serves the caller's order history.
type CheckoutService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	History(ctx context.Context, userID string) ([]*domain.Order, error)
}
