package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/routes"
	"github.com/BruksfildServices01/barber-queue/internal/store"
	"github.com/BruksfildServices01/barber-queue/internal/tasks"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	if !timezone.IsValid(cfg.ShopTimezone) {
		logger.Warn("unknown shop timezone, falling back", "timezone", cfg.ShopTimezone)
	}

	ctx := context.Background()

	// ======================================================
	// STORE
	// ======================================================
	seed, err := store.SeedFromConfig(cfg)
	if err != nil {
		return err
	}
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	clock := clockwork.NewRealClock()
	st := store.New(backend.KV, seed, store.WithClock(clock), store.WithLogger(logger))
	written, err := st.Seed(ctx)
	if err != nil {
		return err
	}
	logger.Info("store ready", "driver", cfg.StoreDriver, "seeded", written)

	// ======================================================
	// AUDIT + METRICS
	// ======================================================
	var sink audit.Sink = audit.NewSlogSink(logger)
	if backend.DB != nil {
		sink = audit.New(backend.DB)
	}
	auditDispatcher := audit.NewDispatcher(sink, cfg.AuditBuffer)
	defer auditDispatcher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// ======================================================
	// ENGINE
	// ======================================================
	engine := queueUC.NewEngine(st,
		queueUC.WithAudit(auditDispatcher),
		queueUC.WithMetrics(m),
		queueUC.WithClock(clock),
		queueUC.WithTimezone(cfg.ShopTimezone),
	)
	if _, err := engine.Stats(ctx); err != nil {
		return err
	}

	scheduler, err := tasks.InitScheduler(cfg.QueueResetCron, cfg.ShopTimezone, engine)
	if err != nil {
		return err
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Engine:   engine,
		DB:       backend.DB,
		Metrics:  m,
		Gatherer: reg,
		Clock:    clock,
		Logger:   logger,
	}); err != nil {
		return err
	}

	// no WriteTimeout: the live queue WebSocket stays open
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exiting")
	return nil
}
