package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// DefaultBatchSize caps how many queued events one write carries.
const DefaultBatchSize = 50

// WriteFunc persists a batch of events.
type WriteFunc func(ctx context.Context, events []*models.AnalyticsEvent) error

// Queue buffers events for background workers. Enqueue never blocks: when
// the buffer is full the event is dropped and counted.
type Queue struct {
	events    chan *models.AnalyticsEvent
	write     WriteFunc
	onError   func(error, int)
	batchSize int
	timeout   time.Duration

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
	dropped atomic.Int64
}

// NewQueue creates a queue with the given buffer size and write function.
func NewQueue(bufferSize int, write WriteFunc) *Queue {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Queue{
		events:    make(chan *models.AnalyticsEvent, bufferSize),
		write:     write,
		onError:   func(error, int) {},
		batchSize: DefaultBatchSize,
		timeout:   5 * time.Second,
	}
}

// OnError registers a callback for failed writes. It receives the error and the batch size.
func (q *Queue) OnError(fn func(err error, n int)) {
	q.onError = fn
}

// Start starts the queue workers.
func (q *Queue) Start(workerCount int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started || q.stopped {
		return
	}
	q.started = true

	for i := 0; i < workerCount; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for event := range q.events {
		batch := []*models.AnalyticsEvent{event}
	drain:
		for len(batch) < q.batchSize {
			select {
			case next, ok := <-q.events:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.write(ctx, batch); err != nil {
			q.onError(err, len(batch))
		}
		cancel()
	}
}

// Enqueue adds an event without blocking. Returns false if it was dropped.
func (q *Queue) Enqueue(event *models.AnalyticsEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		q.dropped.Add(1)
		return false
	}
	select {
	case q.events <- event:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Stop closes the queue and waits for workers to flush what is buffered.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.events)
	q.mu.Unlock()

	q.wg.Wait()
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Dropped returns how many events were discarded.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}
