package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("cart item not found")

// CartLine is one product inside one user's cart. The store enforces at most
// one line per (user, product) pair; repeat adds increment Quantity instead
// of inserting a second line.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`

	// Product carries the live catalog record when the line was read with a
	// join. Nil on bare reads.
	Product *Product `json:"product,omitempty"`
}
