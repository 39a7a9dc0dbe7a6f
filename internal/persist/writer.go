// Package persist writes store snapshots to a storage adapter and rehydrates
// the stores from it at start-up. The stores stay unaware of it: Bind
// subscribes to a store and hands every snapshot to a Writer.
package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/diewo77/go-devis/internal/metrics"
	"github.com/diewo77/go-devis/internal/storage"
)

// ErrClosed is returned by Flush once the writer has been closed.
var ErrClosed = errors.New("persist: writer closed")

const defaultWriteTimeout = 10 * time.Second

// Writer serializes writes to an adapter on a background goroutine. Only the
// latest document per key is kept while a write is pending, so a burst of
// mutations costs one write per record.
type Writer struct {
	adapter storage.Adapter
	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	waiters []chan struct{}
	closed  bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

// NewWriter starts the background goroutine. m may be nil.
func NewWriter(adapter storage.Adapter, log *slog.Logger, m *metrics.Metrics) *Writer {
	w := &Writer{
		adapter: adapter,
		log:     log,
		metrics: m,
		timeout: defaultWriteTimeout,
		pending: map[string][]byte{},
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

// Adapter returns the adapter writes go to.
func (w *Writer) Adapter() storage.Adapter { return w.adapter }

// Enqueue schedules data to be written under key. It never blocks on I/O.
// Documents enqueued after Close are dropped.
func (w *Writer) Enqueue(key string, data []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("persist: write after close dropped", "key", key)
		return
	}
	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = data
	w.mu.Unlock()
	w.signal()
}

// Flush blocks until every document enqueued before the call is written, or
// ctx is done.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	done := make(chan struct{})
	w.waiters = append(w.waiters, done)
	w.mu.Unlock()
	w.signal()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes what is pending and stops the goroutine. It does not close the
// adapter.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	close(w.quit)

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

// drain writes until nothing is pending, then releases Flush callers.
func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			waiters := w.waiters
			w.waiters = nil
			w.mu.Unlock()
			for _, ch := range waiters {
				close(ch)
			}
			return
		}
		key := w.order[0]
		w.order = w.order[1:]
		data := w.pending[key]
		delete(w.pending, key)
		w.mu.Unlock()

		w.write(key, data)
	}
}

func (w *Writer) write(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	err := w.adapter.Save(ctx, key, data)
	w.metrics.Write(key, err)
	if err != nil {
		w.log.Error("persist: write failed", "key", key, "error", err)
		return
	}
	w.log.Debug("persist: record written", "key", key, "bytes", len(data))
}
