package cli

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
	"github.com/BruksfildServices01/barber-queue/internal/store"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// ActorCLI is recorded in the audit trail for staff commands run here.
const ActorCLI = "queuectl"

// session is one command's view of the store: opened, seeded, and closed
// again when the command returns.
type session struct {
	backend *store.Backend
	store   *store.Store
	engine  *queueUC.Engine
	audit   *audit.Dispatcher
	seeded  []string
}

func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	cfg := opts.cfg

	seed, err := store.SeedFromConfig(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load seed", err)
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	st := store.New(backend.KV, seed, store.WithLogger(logging.Logger))
	seeded, err := st.Seed(ctx)
	if err != nil {
		_ = backend.Close()
		return nil, WrapExitError(ExitCommandError, "failed to seed store", err)
	}

	var sink audit.Sink = audit.NewSlogSink(slog.Default())
	if backend.DB != nil {
		sink = audit.New(backend.DB)
	}
	dispatcher := audit.NewDispatcher(sink, cfg.AuditBuffer)

	engine := queueUC.NewEngine(st,
		queueUC.WithAudit(dispatcher),
		queueUC.WithTimezone(cfg.ShopTimezone),
	)

	return &session{
		backend: backend,
		store:   st,
		engine:  engine,
		audit:   dispatcher,
		seeded:  seeded,
	}, nil
}

// Close flushes pending audit events before the store goes away.
func (s *session) Close() {
	s.audit.Close()
	if err := s.backend.Close(); err != nil {
		slog.Warn("closing store", "error", err)
	}
}
