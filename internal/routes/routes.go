package routes

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
)

// Deps is everything the HTTP layer is wired from. DB is nil when the
// store runs on memory or redis; the audit log route is then left out.
type Deps struct {
	Config   *config.Config
	Engine   handlers.QueueEngine
	DB       *gorm.DB
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger, d.Metrics),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(d.Config, d.Clock)
	if err != nil {
		return fmt.Errorf("auth handler: %w", err)
	}
	queueHandler := handlers.NewQueueHandler(d.Engine, d.Clock)
	adminHandler := handlers.NewAdminHandler(d.Engine)
	liveHandler := handlers.NewLiveHandler(d.Engine, d.Config.CustomerPollInterval, d.Clock, d.Metrics)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", handlers.Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/options", queueHandler.Options)
			public.POST("/queue", queueHandler.Join)
			public.GET("/queue", queueHandler.List)
			public.GET("/queue/ws", liveHandler.Stream)
			public.GET("/queue/:id", queueHandler.Status)
			public.DELETE("/queue/:id", queueHandler.Leave)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			admin.GET("/queue", adminHandler.Queue)
			admin.POST("/queue", adminHandler.WalkIn)
			admin.PATCH("/queue/:id/serve", adminHandler.Serve)
			admin.DELETE("/queue/:id", adminHandler.Remove)
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/barbers", adminHandler.Barbers)

			if d.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
