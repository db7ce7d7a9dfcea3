package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// CartService owns per-user cart line items.
type CartService interface {
	// Add puts quantity units of the product in the user's cart, merging into
	// an existing line when present. Stock is not checked here.
	Add(ctx context.Context, userID, productID string, quantity int) error

	// Get returns the user's cart joined with live product data.
	Get(ctx context.Context, userID string) ([]*domain.CartLine, error)

	// Remove decrements the line by one, deleting it when quantity reaches
	// zero. Fails with ErrItemNotFound when the line is absent and
	// ErrForbidden when it belongs to another user.
	Remove(ctx context.Context, userID, lineID string) error
}
