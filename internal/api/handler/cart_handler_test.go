package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

type stubCartService struct {
	addFn    func(ctx context.Context, userID, productID string, quantity int) error
	getFn    func(ctx context.Context, userID string) ([]*domain.CartLine, error)
	removeFn func(ctx context.Context, userID, lineID string) error
}

func (s *stubCartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) Get(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	return s.getFn(ctx, userID)
}

func (s *stubCartService) Remove(ctx context.Context, userID, lineID string) error {
	return s.removeFn(ctx, userID, lineID)
}

func TestCartHandler_Add_WithQuantity(t *testing.T) {
	stub := &stubCartService{
		addFn: func(_ context.Context, userID, productID string, quantity int) error {
			if userID != "u1" || productID != "p1" || quantity != 3 {
				t.Fatalf("unexpected args: %s %s %d", userID, productID, quantity)
			}
			return nil
		},
	}
	h := NewCartHandler(stub)

	user := &domain.User{ID: "u1", Role: domain.RoleClient}
	c, rec := newTestContext(t, http.MethodPost, "/cart/p1", `{"quantity":3}`, user)
	c.SetParamNames("productId")
	c.SetParamValues("p1")

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Add_NoBody(t *testing.T) {
	// No body at all means quantity zero, which the service normalizes to 1.
	stub := &stubCartService{
		addFn: func(_ context.Context, _, _ string, quantity int) error {
			if quantity != 0 {
				t.Fatalf("expected zero quantity passed through, got %d", quantity)
			}
			return nil
		},
	}
	h := NewCartHandler(stub)

	user := &domain.User{ID: "u1"}
	c, rec := newTestContext(t, http.MethodPost, "/cart/p1", "", user)
	c.SetParamNames("productId")
	c.SetParamValues("p1")

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Add_UnknownProduct(t *testing.T) {
	stub := &stubCartService{
		addFn: func(context.Context, string, string, int) error {
			return domain.ErrProductNotFound
		},
	}
	h := NewCartHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/cart/missing", "", &domain.User{ID: "u1"})
	c.SetParamNames("productId")
	c.SetParamValues("missing")

	if err := h.Add(c); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartHandler_Get(t *testing.T) {
	stub := &stubCartService{
		getFn: func(_ context.Context, userID string) ([]*domain.CartLine, error) {
			return []*domain.CartLine{
				{ID: "l1", UserID: userID, ProductID: "p1", Quantity: 2, Product: &domain.Product{ID: "p1", Name: "Sneaker"}},
			}, nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/cart", "", &domain.User{ID: "u1"})

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	cart, _ := resp["cart"].([]any)
	if len(cart) != 1 {
		t.Fatalf("expected one cart line, got %v", resp["cart"])
	}
	line := cart[0].(map[string]any)
	if line["quantity"] != float64(2) {
		t.Fatalf("unexpected line: %v", line)
	}
	product, _ := line["product"].(map[string]any)
	if product == nil || product["name"] != "Sneaker" {
		t.Fatalf("expected joined product data, got %v", line["product"])
	}
}

func TestCartHandler_Remove(t *testing.T) {
	stub := &stubCartService{
		removeFn: func(_ context.Context, userID, lineID string) error {
			if userID != "u1" || lineID != "l1" {
				t.Fatalf("unexpected args: %s %s", userID, lineID)
			}
			return nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/cart/l1", "", &domain.User{ID: "u1"})
	c.SetParamNames("id")
	c.SetParamValues("l1")

	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Remove_Forbidden(t *testing.T) {
	stub := &stubCartService{
		removeFn: func(context.Context, string, string) error {
			return domain.ErrForbidden
		},
	}
	h := NewCartHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/cart/l1", "", &domain.User{ID: "u2"})
	c.SetParamNames("id")
	c.SetParamValues("l1")

	if err := h.Remove(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
