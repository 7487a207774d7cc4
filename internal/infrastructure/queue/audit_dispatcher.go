package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// ErrQueueFull is returned by Record when the target worker cannot accept more events.
var ErrQueueFull = errors.New("audit queue full")

// AuditDispatcher writes moderation events asynchronously. Events are sharded
// by resource so the history of a single resource is written in order.
type AuditDispatcher struct {
	workers []chan domain.ModerationEvent
	sink    ports.AuditLog
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.AuditLog, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.ModerationEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ModerationEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. They drain their queues and stop once ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *AuditDispatcher) Wait() { d.wg.Wait() }

// Record enqueues the event without blocking the request.
func (d *AuditDispatcher) Record(_ context.Context, ev domain.ModerationEvent) error {
	select {
	case d.workers[d.shardIndex(ev)] <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *AuditDispatcher) shardIndex(ev domain.ModerationEvent) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(string(ev.Resource) + ":" + strconv.FormatInt(ev.ResourceID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ModerationEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case ev := <-ch:
			d.write(id, ev)
		}
	}
}

func (d *AuditDispatcher) drain(id int, ch <-chan domain.ModerationEvent) {
	for {
		select {
		case ev := <-ch:
			d.write(id, ev)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) write(id int, ev domain.ModerationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.sink.Record(ctx, ev); err != nil {
		d.log.Error().Err(err).
			Str("resource", string(ev.Resource)).
			Int64("resource_id", ev.ResourceID).
			Int("worker_id", id).
			Msg("moderation event write failed")
	}
}
