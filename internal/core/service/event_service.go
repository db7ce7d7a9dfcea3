package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// EventService appends interaction events. Type tags are never rejected;
// analytics simply ignores the ones it does not count.
type EventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

func NewEventService(repo ports.EventRepository, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, log: log}
}

func (s *EventService) Record(ctx context.Context, in ports.EventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.Event{
		UserID:    in.UserID,
		Type:      in.Type,
		ProductID: in.ProductID,
		Timestamp: ts,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("type", in.Type).
		Str("product_id", in.ProductID).
		Msg("event recorded")

	return nil
}
