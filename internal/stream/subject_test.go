package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}

	var zero T

	return zero
}

func TestSubject_ReplaysLatestValue(t *testing.T) {
	s := NewSubject[int]()
	s.Publish(1)
	s.Publish(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	assert.Equal(t, 2, receive(t, ch))
}

func TestSubject_NoValueBeforePublish(t *testing.T) {
	s := NewSubject[string]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %q", v)
	default:
	}

	_, ok := s.Latest()
	assert.False(t, ok)

	s.Publish("hello")
	assert.Equal(t, "hello", receive(t, ch))
}

func TestSubject_LatestWins(t *testing.T) {
	s := NewSubject[int]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)

	// nobody reads in between, only the last value survives
	for i := 1; i <= 10; i++ {
		s.Publish(i)
	}

	assert.Equal(t, 10, receive(t, ch))

	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestSubject_FanOut(t *testing.T) {
	s := NewSubject[bool]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := s.Subscribe(ctx)
	b := s.Subscribe(ctx)
	assert.Equal(t, 2, s.Subscribers())

	s.Publish(true)
	assert.True(t, receive(t, a))
	assert.True(t, receive(t, b))
}

func TestSubject_CancelReleasesSubscription(t *testing.T) {
	s := NewSubject[int]()

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	require.Equal(t, 1, s.Subscribers())

	cancel()

	assert.Eventually(t, func() bool { return s.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after the subscriber left must not panic
	s.Publish(1)
}

func TestSubject_Close(t *testing.T) {
	s := NewSubject[int]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	s.Close()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, s.Subscribers())

	late := s.Subscribe(ctx)
	_, ok = <-late
	assert.False(t, ok)

	s.Publish(5)
	s.Close()
}
