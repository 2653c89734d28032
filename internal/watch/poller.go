package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Source produces the value handed to subscribers on each tick.
type Source[T any] func(ctx context.Context) (T, error)

// Poller re-reads a source on a fixed interval. The engine stays pull-only;
// anything that wants live updates subscribes through a Poller.
type Poller[T any] struct {
	source   Source[T]
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
}

func NewPoller[T any](source Source[T], interval time.Duration, clock clockwork.Clock) *Poller[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller[T]{
		source:   source,
		interval: interval,
		clock:    clock,
		log:      slog.Default(),
	}
}

// Run reads the source immediately and then on every tick, passing each
// value to fn. It returns nil when ctx is cancelled and fn's error when fn
// fails. Source errors are logged and the tick is skipped.
func (p *Poller[T]) Run(ctx context.Context, fn func(T) error) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.tick(ctx, fn); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}

func (p *Poller[T]) tick(ctx context.Context, fn func(T) error) error {
	if ctx.Err() != nil {
		return nil
	}
	v, err := p.source(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("poll source failed", "error", err)
		}
		return nil
	}
	return fn(v)
}
