package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// CheckoutGuard abstracts the per-user in-flight checkout lock (Redis). It
// protects the order-create/cart-clear sequence from a double-submitted
// checkout, keeping "cart cleared exactly once" true under double clicks.
type CheckoutGuard interface {
	// Acquire reports whether the user's checkout slot was free and is now
	// held by this call.
	Acquire(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

// CheckoutService snapshots a submitted cart into an immutable order, then
// clears the user's cart. The two steps are strictly sequenced: the cart is
// never cleared unless the order was durably created first.
type CheckoutService struct {
	orders ports.OrderRepository
	carts  ports.CartRepository
	guard  CheckoutGuard
	log    zerolog.Logger
}

func NewCheckoutService(orders ports.OrderRepository, carts ports.CartRepository, guard CheckoutGuard, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{orders: orders, carts: carts, guard: guard, log: log}
}

// Checkout validates the submission, creates the order, and clears the cart.
// The submitted total is trusted as-is; it is not recomputed from catalog
// prices.
func (s *CheckoutService) Checkout(ctx context.Context, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if input.Total <= 0 {
		return nil, domain.ErrInvalidTotal
	}

	acquired, err := s.guard.Acquire(ctx, input.UserID)
	if err != nil {
		// The guard is advisory; a failing lock store must not block checkout.
		s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("checkout guard unavailable, proceeding")
	} else if !acquired {
		return nil, domain.ErrCheckoutInProgress
	}
	defer func() {
		if relErr := s.guard.Release(ctx, input.UserID); relErr != nil {
			s.log.Warn().Err(relErr).Str("user_id", input.UserID).Msg("failed to release checkout guard")
		}
	}()

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	order := &domain.Order{
		ID:        generateOrderID(),
		UserID:    input.UserID,
		Items:     items,
		Total:     input.Total,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create order")
		return nil, fmt.Errorf("checkout: create order: %w", err)
	}

	cleared, err := s.carts.ClearUser(ctx, input.UserID)
	if err != nil {
		// The order exists; surfacing the clear failure beats silently leaving
		// a stale cart behind a 200.
		s.log.Error().Err(err).Str("order_id", order.ID).Str("user_id", input.UserID).Msg("order created but cart clear failed")
		return nil, fmt.Errorf("checkout: clear cart: %w", err)
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("user_id", input.UserID).
		Float64("total", order.Total).
		Int64("lines_cleared", cleared).
		Msg("checkout completed")

	return &ports.CheckoutResult{
		OrderID:   order.ID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}, nil
}

func (s *CheckoutService) History(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// generateOrderID returns a unique order identifier in the format ORD-XXXXXXXX.
func generateOrderID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
