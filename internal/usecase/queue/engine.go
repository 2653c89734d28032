package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// Audit actions emitted by the engine.
const (
	ActionJoined  = "queue_joined"
	ActionWalkIn  = "walk_in_added"
	ActionLeft    = "queue_left"
	ActionRemoved = "queue_removed"
	ActionServing = "queue_serving"
	ActionReset   = "queue_reset"

	entityQueueEntry = "queue_entry"
)

// Engine owns every mutation of the queue. Writers are serialized by mu,
// held across the whole read-modify-write of the queue collection; reads
// take the same lock so a snapshot never sees a half-applied renumber.
type Engine struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   clockwork.Clock
	tz      string

	mu sync.Mutex
}

type Option func(*Engine)

func WithAudit(d *audit.Dispatcher) Option {
	return func(e *Engine) { e.audit = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTimezone sets the shop timezone used to stamp created_at.
func WithTimezone(tz string) Option {
	return func(e *Engine) { e.tz = tz }
}

func NewEngine(repo domain.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:  repo,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ===============================
// Reads
// ===============================

func (e *Engine) Barbers(ctx context.Context) ([]models.Barber, error) {
	return e.repo.Barbers(ctx)
}

func (e *Engine) Services(ctx context.Context) ([]models.Service, error) {
	return e.repo.Services(ctx)
}

// Snapshot returns the persisted queue, unfiltered and in persisted order.
func (e *Engine) Snapshot(ctx context.Context) ([]models.QueueEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.repo.Queue(ctx)
}

// Entry looks up a single entry. The bool is false once the entry has left
// the queue.
func (e *Engine) Entry(ctx context.Context, id int) (*models.QueueEntry, bool, error) {
	entries, err := e.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	i := domain.Find(entries, id)
	if i < 0 {
		return nil, false, nil
	}
	entry := entries[i]
	return &entry, true, nil
}

func (e *Engine) Stats(ctx context.Context) (domain.Stats, error) {
	entries, err := e.Snapshot(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	st := domain.ComputeStats(entries)
	e.metrics.ObserveStats(st)
	return st, nil
}

// ===============================
// Mutations
// ===============================

// Admit appends a new waiting entry behind every waiting customer. Unknown
// barber or service ids are tolerated; the wait falls back to the default
// service duration.
func (e *Engine) Admit(ctx context.Context, in AdmitInput) (*models.QueueEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	services, err := e.repo.Services(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := e.repo.Queue(ctx)
	if err != nil {
		return nil, err
	}
	id, err := e.nextID(ctx, entries)
	if err != nil {
		return nil, err
	}

	position := domain.NextPosition(entries)
	entry := models.QueueEntry{
		ID:            id,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		Position:      position,
		Status:        string(domain.InitialStatus()),
		EstimatedWait: domain.EstimateWait(position, domain.ServiceDuration(services, in.ServiceID)),
		CreatedAt:     timezone.In(e.clock.Now(), e.tz),
	}

	entries = append(entries, entry)
	domain.Renumber(entries, services)

	if err := e.repo.SaveQueue(ctx, entries); err != nil {
		return nil, err
	}
	if err := e.repo.SetNextQueueID(ctx, id+1); err != nil {
		return nil, err
	}

	// renumber may have shifted the new entry if the persisted
	// positions were stale; return what was actually stored
	entry = entries[len(entries)-1]

	source := in.source()
	action := ActionJoined
	if source == metrics.SourceWalkIn {
		action = ActionWalkIn
	}
	e.metrics.RecordAdmission(source)
	e.observe(entries)
	e.dispatch(in.Actor, action, entry.ID, map[string]any{
		"barber_id":  entry.BarberID,
		"service_id": entry.ServiceID,
		"position":   entry.Position,
	})
	logging.WithEntry(entry.ID).Info("queue entry admitted",
		"source", source,
		"position", entry.Position,
		"estimated_wait", entry.EstimatedWait,
	)

	return &entry, nil
}

// Depart removes the entry if present. An unknown id is a silent no-op;
// the waiting entries are renumbered either way.
func (e *Engine) Depart(ctx context.Context, id int, actor string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	services, err := e.repo.Services(ctx)
	if err != nil {
		return err
	}
	entries, err := e.repo.Queue(ctx)
	if err != nil {
		return err
	}

	entries, removed := domain.Remove(entries, id)
	domain.Renumber(entries, services)

	if err := e.repo.SaveQueue(ctx, entries); err != nil {
		return err
	}

	e.observe(entries)
	if !removed {
		return nil
	}

	action := ActionLeft
	if actor != "" && actor != ActorCustomer {
		action = ActionRemoved
	}
	e.metrics.RecordDeparture()
	e.dispatch(actor, action, id, nil)
	logging.WithEntry(id).Info("queue entry departed", "actor", actorOr(actor))
	return nil
}

// MarkServing moves the entry into the chair. Absent ids are a no-op and
// nothing is renumbered; the entry keeps its last position and wait.
func (e *Engine) MarkServing(ctx context.Context, id int, actor string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.repo.Queue(ctx)
	if err != nil {
		return err
	}

	i := domain.Find(entries, id)
	if i < 0 {
		return nil
	}
	domain.MarkServing(&entries[i])

	if err := e.repo.SaveQueue(ctx, entries); err != nil {
		return err
	}

	e.metrics.RecordServing()
	e.observe(entries)
	e.dispatch(actor, ActionServing, id, nil)
	logging.WithEntry(id).Info("queue entry serving", "actor", actorOr(actor))
	return nil
}

// Reset empties the queue. The id counter is left alone so ids issued
// before the reset are never handed out again.
func (e *Engine) Reset(ctx context.Context, actor string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.repo.Queue(ctx)
	if err != nil {
		return 0, err
	}
	if err := e.repo.SaveQueue(ctx, nil); err != nil {
		return 0, err
	}

	e.observe(nil)
	e.dispatch(actor, ActionReset, 0, map[string]any{"cleared": len(entries)})
	logging.Logger.Info("queue reset", "cleared", len(entries), "actor", actorOr(actor))
	return len(entries), nil
}

// ===============================
// Helpers
// ===============================

// nextID takes the largest of the persisted counter, one past the highest
// id still queued, and 1. A lost or corrupted counter therefore never
// reissues an id that is still in the queue.
func (e *Engine) nextID(ctx context.Context, entries []models.QueueEntry) (int, error) {
	counter, err := e.repo.NextQueueID(ctx)
	if err != nil {
		return 0, fmt.Errorf("queue: read id counter: %w", err)
	}
	next := max(counter, domain.MaxID(entries)+1, 1)
	return next, nil
}

func (e *Engine) observe(entries []models.QueueEntry) {
	e.metrics.ObserveStats(domain.ComputeStats(entries))
}

func (e *Engine) dispatch(actor, action string, id int, metadata any) {
	if e.audit == nil {
		return
	}
	ev := audit.Event{
		Actor:    actorOr(actor),
		Action:   action,
		Entity:   entityQueueEntry,
		Metadata: metadata,
	}
	if id > 0 {
		ev.EntityID = &id
	}
	e.audit.Dispatch(ev)
}

func actorOr(actor string) string {
	if actor == "" {
		return ActorSystem
	}
	return actor
}
