package audit

import (
	"log/slog"
	"sync"
)

const DefaultBuffer = 100

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *int
	Metadata any
}

// Dispatcher writes events on a single background worker so the request
// path never waits on the audit sink.
type Dispatcher struct {
	sink  Sink
	queue chan Event

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, buffer),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			slog.Warn("audit error", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks: when the buffer is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar a fila)
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the buffered ones to be written.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}
