package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/api/metrics"
	"github.com/apnajourney/platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes view hits to a fixed set of workers using consistent
// hashing on the content id, so hits for the same document are counted in
// order by a single worker.
type Dispatcher struct {
	workers []chan ports.ViewHit
	service ports.ViewService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ViewService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ViewHit, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ViewHit, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a view hit to the worker responsible for its content id.
// When that worker's buffer is full the hit is dropped; a lost view is
// preferable to a blocked request handler.
func (d *Dispatcher) Enqueue(hit ports.ViewHit) {
	idx := d.shardIndex(hit.ContentID)
	select {
	case d.workers[idx] <- hit:
		metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("content_id", hit.ContentID).
			Int("worker_id", idx).
			Msg("view queue full, hit dropped")
	}
}

// shardIndex maps a content id deterministically to a worker index. The
// modulo happens in uint32 so the result stays in range on 32-bit ints.
func (d *Dispatcher) shardIndex(contentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ViewHit) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case hit, ok := <-ch:
			if !ok {
				return
			}
			metrics.ViewQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Record(ctx, hit); err != nil {
				d.log.Error().Err(err).
					Str("content_id", hit.ContentID).
					Int("worker_id", id).
					Msg("view recording failed")
			}
		}
	}
}
