package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Persisted key layout.
const (
	KeyBarbers         = "barbers"
	KeyServices        = "services"
	KeyQueue           = "queue"
	KeyNextQueueID     = "nextQueueId"
	KeyCustomerQueueID = "customerQueueId"
)

// Store exposes the named collections over a KV backend. A missing key
// reads as an empty collection; a malformed one is logged and replaced by
// its default, never returned as an error.
type Store struct {
	kv    KV
	seed  Seed
	clock clockwork.Clock
	log   *slog.Logger
}

type Option func(*Store)

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(kv KV, seed Seed, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		seed:  seed,
		clock: clockwork.NewRealClock(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (s *Store) Barbers(ctx context.Context) ([]models.Barber, error) {
	var out []models.Barber
	ok, err := s.readJSON(ctx, KeyBarbers, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]models.Barber(nil), s.seed.Barbers...), nil
	}
	return out, nil
}

func (s *Store) Services(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	ok, err := s.readJSON(ctx, KeyServices, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]models.Service(nil), s.seed.Services...), nil
	}
	return out, nil
}

// --------------------------------------------------
// Queue
// --------------------------------------------------

func (s *Store) Queue(ctx context.Context) ([]models.QueueEntry, error) {
	var out []models.QueueEntry
	ok, err := s.readJSON(ctx, KeyQueue, &out)
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return []models.QueueEntry{}, nil
	}
	return out, nil
}

func (s *Store) SaveQueue(ctx context.Context, entries []models.QueueEntry) error {
	if entries == nil {
		entries = []models.QueueEntry{}
	}
	return s.writeJSON(ctx, KeyQueue, entries)
}

// --------------------------------------------------
// Id counter
// --------------------------------------------------

// NextQueueID returns 0 when the counter is absent or unusable; the engine
// then derives the next id from the queue itself.
func (s *Store) NextQueueID(ctx context.Context) (int, error) {
	return s.readInt(ctx, KeyNextQueueID)
}

func (s *Store) SetNextQueueID(ctx context.Context, next int) error {
	return s.writeInt(ctx, KeyNextQueueID, next)
}

// --------------------------------------------------
// Customer session ("who am I" on this device)
// --------------------------------------------------

func (s *Store) CustomerQueueID(ctx context.Context) (int, bool, error) {
	id, err := s.readInt(ctx, KeyCustomerQueueID)
	if err != nil {
		return 0, false, err
	}
	return id, id > 0, nil
}

func (s *Store) SetCustomerQueueID(ctx context.Context, id int) error {
	return s.writeInt(ctx, KeyCustomerQueueID, id)
}

func (s *Store) ClearCustomerQueueID(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyCustomerQueueID); err != nil {
		return fmt.Errorf("store: delete %s: %w", KeyCustomerQueueID, err)
	}
	return nil
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

// Seed installs the seed values for every key that is entirely absent.
// Existing values, even malformed ones, are left alone. It reports which
// keys were written.
func (s *Store) Seed(ctx context.Context) ([]string, error) {
	queue := make([]models.QueueEntry, len(s.seed.Queue))
	copy(queue, s.seed.Queue)
	now := s.clock.Now()
	for i := range queue {
		if queue[i].Status == "" {
			queue[i].Status = string(domain.InitialStatus())
		}
		if queue[i].CreatedAt.IsZero() {
			queue[i].CreatedAt = now
		}
	}
	domain.Renumber(queue, s.seed.Services)

	next := s.seed.NextQueueID
	if minNext := domain.MaxID(queue) + 1; next < minNext {
		next = minNext
	}

	steps := []struct {
		key   string
		write func() error
	}{
		{KeyBarbers, func() error { return s.writeJSON(ctx, KeyBarbers, s.seed.Barbers) }},
		{KeyServices, func() error { return s.writeJSON(ctx, KeyServices, s.seed.Services) }},
		{KeyQueue, func() error { return s.writeJSON(ctx, KeyQueue, queue) }},
		{KeyNextQueueID, func() error { return s.writeInt(ctx, KeyNextQueueID, next) }},
	}

	var written []string
	for _, step := range steps {
		_, found, err := s.kv.Get(ctx, step.key)
		if err != nil {
			return written, fmt.Errorf("store: read %s: %w", step.key, err)
		}
		if found {
			continue
		}
		if err := step.write(); err != nil {
			return written, err
		}
		written = append(written, step.key)
	}

	if len(written) > 0 {
		s.log.Info("store seeded", "keys", written)
	}
	return written, nil
}

// --------------------------------------------------
// Encoding helpers
// --------------------------------------------------

// readJSON decodes key into dst. ok=false means the stored value was
// malformed and the caller should soft-reset.
func (s *Store) readJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if !found {
		return true, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("malformed persisted value, using default", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Counters are decimal strings, not JSON.
func (s *Store) readInt(ctx context.Context, key string) (int, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("store: read %s: %w", key, err)
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 1 {
		s.log.Warn("malformed persisted counter, ignoring", "key", key, "value", string(raw))
		return 0, nil
	}
	return n, nil
}

func (s *Store) writeInt(ctx context.Context, key string, n int) error {
	if err := s.kv.Set(ctx, key, []byte(strconv.Itoa(n))); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

var _ domain.Repository = (*Store)(nil)
