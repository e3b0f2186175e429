package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// AsyncHandler moves record formatting and writing off the request path.
// Records are queued on a bounded channel and dropped when it is full, so a
// slow log sink never stalls a handler.
type AsyncHandler struct {
	inner   slog.Handler
	ch      chan queued
	wg      *sync.WaitGroup
	dropped *atomic.Int64
}

// queued pairs a record with the request ID captured at enqueue time; the
// originating context is gone by the time a worker handles the record.
type queued struct {
	rec       slog.Record
	requestID string
	inner     slog.Handler
}

// NewAsyncHandler creates an AsyncHandler with the given channel capacity and worker count.
func NewAsyncHandler(inner slog.Handler, chanSize, workers int) *AsyncHandler {
	h := &AsyncHandler{
		inner:   inner,
		ch:      make(chan queued, chanSize),
		wg:      &sync.WaitGroup{},
		dropped: &atomic.Int64{},
	}
	for range workers {
		h.wg.Add(1)
		go h.drain()
	}
	return h
}

func (h *AsyncHandler) drain() {
	defer h.wg.Done()
	for q := range h.ch {
		ctx := context.Background()
		if q.requestID != "" {
			ctx = WithRequestID(ctx, q.requestID)
		}
		_ = q.inner.Handle(ctx, q.rec)
	}
}

// Enabled delegates to the inner handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle enqueues the record. Drops if the channel is full.
func (h *AsyncHandler) Handle(ctx context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	q := queued{rec: rec.Clone(), requestID: RequestID(ctx), inner: h.inner}
	select {
	case h.ch <- q:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// WithAttrs returns a handler sharing the same queue with attrs applied to the inner handler.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithAttrs(attrs), ch: h.ch, wg: h.wg, dropped: h.dropped}
}

// WithGroup returns a handler sharing the same queue with the group applied to the inner handler.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithGroup(name), ch: h.ch, wg: h.wg, dropped: h.dropped}
}

// DroppedCount returns the number of dropped records.
func (h *AsyncHandler) DroppedCount() int64 {
	return h.dropped.Load()
}

// Close closes the queue and waits for all workers to drain it.
func (h *AsyncHandler) Close() {
	close(h.ch)
	h.wg.Wait()
}
