package ports

import (
	"context"
	"time"
)

// EventInput is the DTO passed from the transport layer to EventService.
// Type is a free tag; unknown types are stored and simply not counted by the
// analytics rollups. ProductID is optional. A zero Timestamp means "now".
type EventInput struct {
	UserID    string
	Type      string
	ProductID string
	Timestamp time.Time
}

// EventService appends interaction events.
type EventService interface {
	Record(ctx context.Context, input EventInput) error
}
