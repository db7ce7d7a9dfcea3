package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type stubEventService struct {
	recorded []ports.EventInput
	err      error
}

func (s *stubEventService) Record(_ context.Context, input ports.EventInput) error {
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, input)
	return nil
}

type stubDispatcher struct {
	enqueued []ports.EventInput
}

func (d *stubDispatcher) EnqueueBatch(events []ports.EventInput) {
	d.enqueued = append(d.enqueued, events...)
}

func TestEventHandler_Record(t *testing.T) {
	svc := &stubEventService{}
	h := NewEventHandler(svc, &stubDispatcher{})

	body := `{"type":"product_view","productId":"p1"}`
	c, rec := newTestContext(t, http.MethodPost, "/events", body, &domain.User{ID: "u1"})

	if err := h.Record(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(svc.recorded) != 1 {
		t.Fatalf("expected one event recorded, got %d", len(svc.recorded))
	}
	got := svc.recorded[0]
	if got.UserID != "u1" || got.Type != "product_view" || got.ProductID != "p1" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestEventHandler_Record_MissingType(t *testing.T) {
	h := NewEventHandler(&stubEventService{}, &stubDispatcher{})

	c, _ := newTestContext(t, http.MethodPost, "/events", `{"productId":"p1"}`, &domain.User{ID: "u1"})

	err := h.Record(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestEventHandler_RecordBatch(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewEventHandler(&stubEventService{}, dispatcher)

	body := `[{"type":"click"},{"type":"product_view","productId":"p2"}]`
	c, rec := newTestContext(t, http.MethodPost, "/events/batch", body, &domain.User{ID: "u1"})

	if err := h.RecordBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected two events enqueued, got %d", len(dispatcher.enqueued))
	}
	for _, e := range dispatcher.enqueued {
		if e.UserID != "u1" {
			t.Fatalf("user ID not stamped onto event: %+v", e)
		}
	}

	resp := decodeBody(t, rec)
	if resp["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", resp["count"])
	}
}

func TestEventHandler_RecordBatch_Empty(t *testing.T) {
	h := NewEventHandler(&stubEventService{}, &stubDispatcher{})

	c, _ := newTestContext(t, http.MethodPost, "/events/batch", `[]`, &domain.User{ID: "u1"})

	err := h.RecordBatch(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %v", err)
	}
}

func TestEventHandler_RecordBatch_InvalidItem(t *testing.T) {
	dispatcher := &stubDispatcher{}
	h := NewEventHandler(&stubEventService{}, dispatcher)

	body := `[{"type":"click"},{"productId":"p2"}]`
	c, _ := newTestContext(t, http.MethodPost, "/events/batch", body, &domain.User{ID: "u1"})

	err := h.RecordBatch(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid item, got %v", err)
	}
	if len(dispatcher.enqueued) != 0 {
		t.Fatalf("nothing may be enqueued when validation fails")
	}
}
