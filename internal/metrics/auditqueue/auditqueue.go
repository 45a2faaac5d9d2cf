package auditqueue

import (
	"context"
	"log"
	"sync"
	"time"

	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
)

// Writer persists a batch of events.
type Writer interface {
	InsertBatch(ctx context.Context, batch []auditstore.Event) error
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
)

// Queue buffers audit events and writes them in batches from N workers.
type Queue struct {
	w    Writer
	ch   chan auditstore.Event
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	mu      sync.Mutex
	dropped int64
}

// Start spins up workers over a buffered channel.
// Suggested: buf=10000, workers=2
func Start(w Writer, buf, workers int) *Queue {
	if buf <= 0 {
		buf = 1
	}
	if workers <= 0 {
		workers = 1
	}
	q := &Queue{
		w:    w,
		ch:   make(chan auditstore.Event, buf),
		done: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue never blocks. If the buffer is full the event is dropped
// (acceptable for statistics).
func (q *Queue) Enqueue(ev auditstore.Event) {
	if q == nil {
		return
	}
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.ch <- ev:
	default:
		q.mu.Lock()
		q.dropped++
		q.mu.Unlock()
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (q *Queue) Dropped() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func (q *Queue) Shutdown() {
	if q == nil {
		return
	}
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]auditstore.Event, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTO)
		if err := q.w.InsertBatch(ctx, batch); err != nil {
			log.Printf("[audit] insert of %d events failed: %v", len(batch), err)
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain quickly then flush
			for {
				select {
				case ev := <-q.ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-q.ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}
