package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

func seedCart(t *testing.T, carts *stubCartRepo, userID string) {
	t.Helper()
	if err := carts.AddOrIncrement(context.Background(), userID, "p1", 2, time.Now().UTC()); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func checkoutInput(userID string) ports.CheckoutInput {
	return ports.CheckoutInput{
		UserID: userID,
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Name: "Sneaker", Price: 49.99, Quantity: 2},
		},
		Total: 99.98,
	}
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	guard := &stubGuard{}
	svc := NewCheckoutService(orders, carts, guard, zerolog.Nop())

	seedCart(t, carts, "u1")

	result, err := svc.Checkout(context.Background(), checkoutInput("u1"))
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if !strings.HasPrefix(result.OrderID, "ORD-") {
		t.Fatalf("unexpected order ID format: %s", result.OrderID)
	}
	if result.Total != 99.98 {
		t.Fatalf("expected total 99.98, got %v", result.Total)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders.orders))
	}
	if len(orders.orders[0].Items) != 1 || orders.orders[0].Items[0].ProductID != "p1" {
		t.Fatalf("order snapshot wrong: %+v", orders.orders[0].Items)
	}
	if len(carts.lines) != 0 {
		t.Fatalf("cart not cleared after checkout")
	}
	if len(guard.released) != 1 {
		t.Fatalf("guard not released")
	}
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	svc := NewCheckoutService(&stubOrderRepo{}, newStubCartRepo(), &stubGuard{}, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", Total: 10})
	if err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutService_Checkout_InvalidTotal(t *testing.T) {
	svc := NewCheckoutService(&stubOrderRepo{}, newStubCartRepo(), &stubGuard{}, zerolog.Nop())

	input := checkoutInput("u1")
	input.Total = 0
	if _, err := svc.Checkout(context.Background(), input); err != domain.ErrInvalidTotal {
		t.Fatalf("expected ErrInvalidTotal for zero total, got %v", err)
	}

	input.Total = -5
	if _, err := svc.Checkout(context.Background(), input); err != domain.ErrInvalidTotal {
		t.Fatalf("expected ErrInvalidTotal for negative total, got %v", err)
	}
}

func TestCheckoutService_Checkout_OrderFailureKeepsCart(t *testing.T) {
	orders := &stubOrderRepo{createErr: errors.New("write failed")}
	carts := newStubCartRepo()
	svc := NewCheckoutService(orders, carts, &stubGuard{}, zerolog.Nop())

	seedCart(t, carts, "u1")

	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err == nil {
		t.Fatalf("expected error when order create fails")
	}
	// The cart is only cleared after the order is durably created.
	if len(carts.cleared) != 0 {
		t.Fatalf("cart must not be cleared when order create fails")
	}
	if len(carts.lines) != 1 {
		t.Fatalf("cart lines must survive a failed checkout")
	}
}

func TestCheckoutService_Checkout_ClearFailureSurfaces(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	carts.clearErr = errors.New("delete failed")
	svc := NewCheckoutService(orders, carts, &stubGuard{}, zerolog.Nop())

	seedCart(t, carts, "u1")

	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err == nil {
		t.Fatalf("expected error when cart clear fails")
	}
	// The order was created before the clear was attempted.
	if len(orders.orders) != 1 {
		t.Fatalf("expected order to exist despite clear failure")
	}
}

func TestCheckoutService_Checkout_AlreadyInFlight(t *testing.T) {
	guard := &stubGuard{held: true}
	svc := NewCheckoutService(&stubOrderRepo{}, newStubCartRepo(), guard, zerolog.Nop())

	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err != domain.ErrCheckoutInProgress {
		t.Fatalf("expected ErrCheckoutInProgress, got %v", err)
	}
}

func TestCheckoutService_Checkout_GuardUnavailable(t *testing.T) {
	// A failing lock store is advisory only; checkout proceeds without it.
	guard := &stubGuard{acquireErr: errors.New("redis down")}
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	svc := NewCheckoutService(orders, carts, guard, zerolog.Nop())

	seedCart(t, carts, "u1")

	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err != nil {
		t.Fatalf("expected checkout to proceed, got %v", err)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected order to be created")
	}
}

func TestCheckoutService_History(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	svc := NewCheckoutService(orders, carts, &stubGuard{}, zerolog.Nop())

	seedCart(t, carts, "u1")
	if _, err := svc.Checkout(context.Background(), checkoutInput("u1")); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	history, err := svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one order, got %d", len(history))
	}

	other, err := svc.History(context.Background(), "u2")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no orders for other user, got %d", len(other))
	}
}
