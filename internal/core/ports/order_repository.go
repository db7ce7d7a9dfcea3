package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence for immutable orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)

	// Analytics reads.
	CountAll(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	CountByUser(ctx context.Context) (map[string]int64, error)
}
