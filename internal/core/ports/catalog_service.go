package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// ListProductsInput carries raw, unparsed query parameters. The service
// resolves them into a CatalogFilter; malformed numeric bounds are ignored
// rather than rejected.
type ListProductsInput struct {
	Category string
	Brand    string
	Color    string
	Search   string
	MinPrice string
	MaxPrice string
	Sort     string
}

// CatalogService defines catalog reads and the admin stock mutation.
type CatalogService interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error)
}
