package service

import (
	"context"
	"strconv"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// CatalogService translates raw query parameters into catalog queries and
// owns the admin-only stock mutation.
type CatalogService struct {
	repo ports.ProductRepository
}

func NewCatalogService(repo ports.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context, input ports.ListProductsInput) ([]*domain.Product, error) {
	filter := ports.CatalogFilter{
		Category: input.Category,
		Brand:    input.Brand,
		Color:    input.Color,
		Search:   input.Search,
		MinPrice: parsePrice(input.MinPrice),
		MaxPrice: parsePrice(input.MaxPrice),
		Sort:     resolveSort(input.Sort),
	}
	return s.repo.List(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	if stock < 0 {
		stock = 0
	}
	return s.repo.UpdateStock(ctx, id, stock)
}

// parsePrice parses an optional price bound. Malformed values are ignored
// rather than rejected.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// resolveSort maps a sort key to a known one, falling back to name ascending.
func resolveSort(key string) string {
	switch key {
	case ports.SortNameDesc, ports.SortPriceAsc, ports.SortPriceDesc, ports.SortNewest:
		return key
	default:
		return ports.SortNameAsc
	}
}
