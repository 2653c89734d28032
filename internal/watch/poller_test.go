package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterSource(n *atomic.Int32) Source[int] {
	return func(context.Context) (int, error) {
		return int(n.Add(1)), nil
	}
}

func receive(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll")
		return 0
	}
}

func TestPoller_ReadsImmediatelyThenOnEveryTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	p := NewPoller(counterSource(&calls), 5*time.Second, clock)

	got := make(chan int, 10)
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, func(v int) error {
			got <- v
			return nil
		})
	}()

	assert.Equal(t, 1, receive(t, got))

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(5 * time.Second)
	assert.Equal(t, 2, receive(t, got))

	clock.Advance(5 * time.Second)
	assert.Equal(t, 3, receive(t, got))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}

func TestPoller_StopsWhenCallbackFails(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	p := NewPoller(counterSource(&calls), time.Second, clock)

	closed := errors.New("socket closed")
	err := p.Run(context.Background(), func(int) error { return closed })

	assert.ErrorIs(t, err, closed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPoller_SkipsSourceErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	source := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("backend unavailable")
		}
		return 42, nil
	}
	p := NewPoller(source, time.Second, clock)

	got := make(chan int, 1)
	go func() {
		_ = p.Run(ctx, func(v int) error {
			got <- v
			return nil
		})
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	assert.Equal(t, 42, receive(t, got))
}

func TestPoller_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	p := NewPoller(counterSource(&calls), time.Second, clockwork.NewFakeClock())

	err := p.Run(ctx, func(int) error { return nil })
	assert.NoError(t, err)
	assert.Zero(t, calls.Load())
}
