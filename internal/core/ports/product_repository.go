package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// Catalog sort keys. Unknown keys fall back to SortNameAsc.
const (
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// CatalogFilter carries the resolved catalog query. All filters are ANDed.
// Price bounds are inclusive; nil means unbounded.
type CatalogFilter struct {
	Category string // equality; empty or "all" = no filter
	Brand    string // equality; empty or "all" = no filter
	Color    string // equality; empty or "all" = no filter
	Search   string // case-insensitive substring over name and brand
	MinPrice *float64
	MaxPrice *float64
	Sort     string // one of the Sort* keys
}

// ProductRepository defines persistence for catalog products.
type ProductRepository interface {
	List(ctx context.Context, filter CatalogFilter) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the subset of products that still exist, keyed by ID.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	// UpdateStock sets the absolute stock value and returns the updated product.
	UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error)
}
