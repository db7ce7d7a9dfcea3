package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streetlab/storefront-api/internal/api/metrics"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue batched events.
type EventDispatcher interface {
	EnqueueBatch(events []ports.EventInput)
}

// EventHandler handles interaction event ingestion.
type EventHandler struct {
	service    ports.EventService
	dispatcher EventDispatcher
}

// NewEventHandler creates an EventHandler recording single events through the
// service and batches through the dispatcher.
func NewEventHandler(service ports.EventService, dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{service: service, dispatcher: dispatcher}
}

// Record handles POST /events — appends one event synchronously.
//
// @Summary      Record an interaction event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        token  header    string        true  "Session token"
// @Param        body   body      eventRequest  true  "Interaction event"
// @Success      200    {object}  acceptedResponse
// @Failure      400    {object}  map[string]any
// @Router       /events [post]
func (h *EventHandler) Record(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Record(c.Request().Context(), toEventInput(req, user.ID)); err != nil {
		return err
	}

	metrics.EventsRecordedTotal.WithLabelValues(req.Type).Inc()

	return c.JSON(http.StatusOK, acceptedResponse{
		Status:  http.StatusOK,
		Message: "event recorded",
	})
}

// RecordBatch handles POST /events/batch — enqueues a batch of events for
// asynchronous persistence, returns 202.
//
// @Summary      Record a batch of interaction events
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        token  header    string          true  "Session token"
// @Param        body   body      []eventRequest  true  "Array of interaction events"
// @Success      202    {object}  acceptedResponse
// @Failure      400    {object}  map[string]any
// @Router       /events/batch [post]
func (h *EventHandler) RecordBatch(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var reqs []eventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.EventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toEventInput(req, user.ID))
		metrics.EventsRecordedTotal.WithLabelValues(req.Type).Inc()
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Status:  http.StatusAccepted,
		Message: "events accepted",
		Count:   len(inputs),
	})
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r eventRequest, userID string) ports.EventInput {
	return ports.EventInput{
		UserID:    userID,
		Type:      r.Type,
		ProductID: r.ProductID,
		Timestamp: r.Timestamp,
	}
}
