// Package publisher emits audit events to a Store, either synchronously or
// through a bounded buffer drained by a background worker. Audit emission is
// fail-open: callers log emission errors but never fail the user request.
package publisher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "github.com/Rishov2004/Blood-Donation/pkg/platform/audit"
)

// ErrBufferFull is returned in async mode when the buffer cannot accept
// another event. Callers treat this as a dropped event, not a failure.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher writes audit events to a backing store.
type Publisher struct {
	store audit.Store

	buffer chan audit.Event
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given buffer
// size. Events are appended by a background worker; Close drains the buffer.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

// NewPublisher constructs a publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		// The request context is gone by the time the worker runs.
		_ = p.store.Append(context.Background(), event)
	}
}

// Emit records an event. Missing IDs and timestamps are filled in. In async
// mode a full buffer drops the event and reports ErrBufferFull.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.buffer <- event:
		return nil
	default:
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrBufferFull
	}
}

// List returns the most recent events from the backing store.
func (p *Publisher) List(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close stops the async worker after its buffer is drained. Safe to call in
// sync mode and safe to call twice.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}
