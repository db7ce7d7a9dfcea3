package ports

import (
	"context"
	"time"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// CartRepository defines persistence for cart lines.
type CartRepository interface {
	// AddOrIncrement merges a repeat add into the existing (user, product)
	// line with a single conditional update: increment quantity when the line
	// exists, insert it with addedAt otherwise. Must not lose concurrent
	// increments of the same pair.
	AddOrIncrement(ctx context.Context, userID, productID string, quantity int, addedAt time.Time) error

	// ListWithProducts returns the user's lines joined with live product
	// data. Lines whose product no longer exists are omitted.
	ListWithProducts(ctx context.Context, userID string) ([]*domain.CartLine, error)

	FindByID(ctx context.Context, lineID string) (*domain.CartLine, error)
	DecrementQuantity(ctx context.Context, lineID string) error
	Delete(ctx context.Context, lineID string) error

	// ClearUser deletes every line the user owns and reports how many.
	ClearUser(ctx context.Context, userID string) (int64, error)
}
