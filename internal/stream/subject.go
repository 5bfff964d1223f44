// Package stream provides push-based value streams with scoped subscriptions.
package stream

import (
	"context"
	"sync"
)

// Subject fans out published values to all current subscribers.
//
// A new subscriber immediately receives the latest published value, if any.
// Delivery is latest-wins: every subscriber owns a channel with a single slot
// and a pending, not yet consumed value is replaced by a newer one, so the
// publisher never blocks on a slow subscriber.
type Subject[T any] struct {
	mu      sync.Mutex
	last    T
	hasLast bool
	closed  bool
	nextID  uint64
	subs    map[uint64]chan T
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{
		subs: make(map[uint64]chan T),
	}
}

// Subscribe returns a channel receiving published values until ctx is done
// or the subject is closed. The channel is closed in both cases.
func (s *Subject[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)

		return ch
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	if s.hasLast {
		ch <- s.last
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.unsubscribe(id)
	}()

	return ch
}

// Publish stores v as the latest value and delivers it to every subscriber.
// Publishing on a closed subject is a no-op.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.last = v
	s.hasLast = true

	for _, ch := range s.subs {
		deliver(ch, v)
	}
}

// Latest returns the last published value and whether one exists.
func (s *Subject[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last, s.hasLast
}

// Subscribers returns the number of active subscriptions.
func (s *Subject[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs)
}

// Close ends all subscriptions. Subsequent subscriptions receive a closed channel.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true

	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *Subject[T]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.subs[id]
	if !ok {
		return
	}

	close(ch)
	delete(s.subs, id)
}

// deliver replaces a pending value in ch with v. Callers hold the subject
// lock, so no other sender competes for the slot.
func deliver[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}

	// drop the stale value; the consumer may have taken it meanwhile
	select {
	case <-ch:
	default:
	}

	select {
	case ch <- v:
	default:
	}
}
