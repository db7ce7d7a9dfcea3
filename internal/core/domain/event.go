package domain

import "time"

// Well-known interaction event types. The recorder accepts any type tag;
// these are the ones the analytics rollups count.
const (
	EventProductView = "product_view"
	EventAddToCart   = "add_to_cart"
	EventClick       = "click"
)

// Event is a single append-only user interaction record.
type Event struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	ProductID string    `json:"product_id,omitempty"` // optional
	Timestamp time.Time `json:"timestamp"`
}
