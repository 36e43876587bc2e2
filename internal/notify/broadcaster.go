// Package notify implements a small in-process fan-out used to tell
// observers that some state changed.
//
// Broadcaster delivers values of type T to every current subscriber.
// Delivery never blocks the publisher: each subscriber owns a buffered
// channel and a value is dropped for a subscriber whose buffer is full.
package notify

import "sync"

// DefaultBuffer is the per-subscriber channel capacity used by New.
const DefaultBuffer = 16

type Broadcaster[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]chan T
	next   uint64
	buffer int
}

func New[T any]() *Broadcaster[T] {
	return NewWithBuffer[T](DefaultBuffer)
}

// NewWithBuffer returns a Broadcaster whose subscriber channels hold up to
// buffer undelivered values. buffer < 1 is treated as 1.
func NewWithBuffer[T any](buffer int) *Broadcaster[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster[T]{subs: make(map[uint64]chan T), buffer: buffer}
}

// Subscribe registers a new subscriber. The returned cancel function
// unregisters it and closes the channel; calling it more than once is safe.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Broadcaster[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Notify delivers v to all subscribers without blocking and returns the
// number of subscribers that received it.
func (b *Broadcaster[T]) Notify(v T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- v:
			delivered++
		default:
		}
	}
	return delivered
}
