package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/omnara-ai/webhook-server/internal/api/handlers"
	mw "github.com/omnara-ai/webhook-server/internal/api/middleware"
	"github.com/omnara-ai/webhook-server/internal/buildconfig"
	"github.com/omnara-ai/webhook-server/internal/config"
	"github.com/omnara-ai/webhook-server/internal/domain"
	"github.com/omnara-ai/webhook-server/internal/service"
	"go.uber.org/zap"
)

// App holds the router and request counters for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	// Services
	ids := service.NewIDGenerator()
	agentSvc := service.NewAgentService(ids, logger)
	deploySvc := service.NewDeployService(logger)
	reviewSvc := service.NewReviewService(logger)
	dispatcher := service.NewDispatcher(agentSvc, deploySvc, reviewSvc, logger)

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(dispatcher)
	agentHandler := handlers.NewAgentHandler(agentSvc)
	systemHandler := handlers.NewSystemHandler()

	r := chi.NewRouter()

	// Initialize app with metrics tracking
	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)                                       // Generate/extract request ID first
	r.Use(middleware.RealIP)                                  // Extract real IP
	r.Use(metricsCollector.Middleware)                        // Collect metrics
	r.Use(mw.Logging(logger))                                 // Log all requests
	r.Use(mw.Recovery(logger))                                // Convert panics to JSON 500s
	r.Use(mw.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)) // Rate limiting
	r.Use(mw.CORS(cfg.AllowedOrigins))                        // Browser cross-origin contract

	// Service info + health (no auth)
	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Webhook (shared-secret auth)
	r.Route("/webhook", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(cfg.APIKey))
		r.Post("/", webhookHandler.Receive)
	})

	// Agent stubs (no auth)
	r.Route("/api/agents", func(r chi.Router) {
		r.Post("/", agentHandler.Create)
		r.Get("/", agentHandler.List)
	})

	return app
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.Info(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure the dispatcher satisfies the domain interface at compile time.
var _ domain.Dispatcher = (*service.Dispatcher)(nil)
