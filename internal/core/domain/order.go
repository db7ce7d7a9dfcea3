package domain

import (
	"errors"
	"time"
)

var ErrEmptyCart = errors.New("cart is empty")
var ErrInvalidTotal = errors.New("invalid order total")
var ErrCheckoutInProgress = errors.New("checkout already in progress")

// OrderItem is a cart line frozen at checkout time. Name and price are copied
// from the cart view, not re-joined against the catalog later.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is an immutable checkout snapshot. Never updated or deleted.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}
