package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 64

// Option configures a Broker.
type Option func(*options)

type options struct {
	buffer int
}

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.buffer = size
		}
	}
}

// Broker delivers each published event to every current subscriber.
// Publish never blocks: a subscriber whose buffer is full misses the event and
// the miss is counted by Dropped.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]struct{}
	closed bool
	buffer int

	seq     atomic.Uint64
	dropped atomic.Uint64
}

// NewBroker creates an open broker.
func NewBroker[T any](opts ...Option) *Broker[T] {
	o := options{buffer: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		buffer: o.buffer,
	}
}

// Subscribe returns a channel receiving every event published from now on.
// The channel is closed when ctx is cancelled or the broker is closed; a
// subscription on a closed broker returns an already closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.buffer)
	b.subs[sub] = struct{}{}
	context.AfterFunc(ctx, func() { b.unsubscribe(sub) })
	return sub
}

func (b *Broker[T]) unsubscribe(sub chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub)
}

// Publish stamps payload with the next sequence number and hands it to every
// subscriber that has room for it.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Seq:       b.seq.Add(1),
		Payload:   payload,
		Timestamp: time.Now(),
	}
	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	clear(b.subs)
}

// SubscriberCount returns the number of open subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Published returns the sequence number of the latest event.
func (b *Broker[T]) Published() uint64 {
	return b.seq.Load()
}

// Dropped returns how many deliveries were skipped because a subscriber's
// buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}
