package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// ProductEventCount is one row of a per-product event rollup.
type ProductEventCount struct {
	ProductID string
	Count     int64
}

// EventRepository persists interaction events and serves the grouped reads
// the analytics rollups are built from.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) error

	CountAll(ctx context.Context) (int64, error)
	// TopProductsByType groups events of the given type by product and
	// returns the limit highest counts, descending.
	TopProductsByType(ctx context.Context, eventType string, limit int) ([]ProductEventCount, error)
	// CountByProductForType returns per-product counts of the given type,
	// restricted to productIDs.
	CountByProductForType(ctx context.Context, eventType string, productIDs []string) (map[string]int64, error)
	CountByUser(ctx context.Context) (map[string]int64, error)
}
