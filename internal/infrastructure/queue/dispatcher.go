package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/streetlab/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes batched interaction events to a fixed set of workers
// using consistent hashing on the user ID, guaranteeing per-user event
// ordering while batches from different users persist in parallel.
type Dispatcher struct {
	workers []chan ports.EventInput
	service ports.EventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.EventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.EventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.EventInput) {
	d.workers[d.shardIndex(event.UserID)] <- event
}

// EnqueueBatch enqueues multiple events preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.EventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("user_id", event.UserID).
					Str("type", event.Type).
					Int("worker_id", id).
					Msg("event recording failed")
			}
		}
	}
}
