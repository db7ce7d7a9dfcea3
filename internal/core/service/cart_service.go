package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// CartService owns per-user cart lines. The merge-or-create invariant (at
// most one line per user/product pair) is delegated to the repository's
// atomic conditional update so concurrent adds never lose increments.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// Add puts quantity units of the product in the cart. Stock is deliberately
// not checked; low-stock handling lives in the admin UI, not here.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	if err := s.carts.AddOrIncrement(ctx, userID, productID, quantity, time.Now().UTC()); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	s.log.Debug().
		Str("user_id", userID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart line added")

	return nil
}

func (s *CartService) Get(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	return s.carts.ListWithProducts(ctx, userID)
}

// Remove decrements the line by one, deleting it at quantity zero.
func (s *CartService) Remove(ctx context.Context, userID, lineID string) error {
	line, err := s.carts.FindByID(ctx, lineID)
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	if line.UserID != userID {
		return domain.ErrForbidden
	}

	if line.Quantity > 1 {
		return s.carts.DecrementQuantity(ctx, lineID)
	}
	return s.carts.Delete(ctx, lineID)
}
