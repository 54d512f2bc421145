package event

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultBuffer is sized so a stream of per-line progress events survives a
// briefly busy consumer without the core ever blocking on it.
const DefaultBuffer = 256

// Emitter publishes events to a single consumer channel. Publish never
// blocks: when the buffer is full the event is dropped and counted. The
// consumer is expected to drain Events promptly, so drops only happen when
// the front end has stalled.
type Emitter struct {
	ch      chan Event
	log     *zap.Logger
	dropped atomic.Uint64

	closeOnce sync.Once
}

// NewEmitter creates an emitter with the given buffer size; sizes below one
// are raised to DefaultBuffer.
func NewEmitter(buffer int, log *zap.Logger) *Emitter {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		ch:  make(chan Event, buffer),
		log: log,
	}
}

// Events returns the consumer side of the emitter.
func (e *Emitter) Events() <-chan Event {
	return e.ch
}

// Publish enqueues an event without blocking. Per-session ordering follows
// publish order as long as the buffer does not overflow.
func (e *Emitter) Publish(ev Event) {
	select {
	case e.ch <- ev:
	default:
		e.dropped.Add(1)
		e.log.Warn("event buffer full, dropping event",
			zap.String("session_id", ev.SessionID()),
			zap.Uint64("dropped_total", e.dropped.Load()))
	}
}

// Dropped reports how many events were discarded due to a full buffer.
func (e *Emitter) Dropped() uint64 {
	return e.dropped.Load()
}

// Close ends the stream. Safe to call more than once; Publish must not be
// called after Close.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		close(e.ch)
	})
}
