package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/driftline/infinite-library/internal/api/handlers"
	mw "github.com/driftline/infinite-library/internal/api/middleware"
	"github.com/driftline/infinite-library/internal/buildconfig"
	"github.com/driftline/infinite-library/internal/config"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/session"
	"github.com/driftline/infinite-library/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the counters the metrics endpoint reports.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64

	corpus   *corpus.Corpus
	sessions *session.Service
}

func NewApp(c *corpus.Corpus, settings *store.SettingsStore, sessions *session.Service, logger *zap.Logger) *App {
	documentHandler := handlers.NewDocumentHandler(c)
	agentHandler := handlers.NewAgentHandler(c)
	sessionHandler := handlers.NewSessionHandler(sessions, c)
	settingsHandler := handlers.NewSettingsHandler(settings, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
		corpus:    c,
		sessions:  sessions,
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		// Documents
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Get("/{id}", documentHandler.GetByID)
		})

		// Faction filter options
		r.Get("/factions", documentHandler.Factions)

		// Agents
		r.Route("/agents", func(r chi.Router) {
			r.Get("/", agentHandler.List)
			r.Get("/{id}", agentHandler.GetByID)
		})

		// Browsing sessions (one per reading surface)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Patch("/view", sessionHandler.UpdateView)
				r.Put("/active", sessionHandler.SelectActive)
				r.Delete("/", sessionHandler.Delete)
			})
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Put)
			r.Get("/watch", settingsHandler.Watch)
		})
	})

	return app
}

// NewRouter returns just the chi.Mux for callers that do not need the App.
func NewRouter(c *corpus.Corpus, settings *store.SettingsStore, sessions *session.Service, logger *zap.Logger) *chi.Mux {
	return NewApp(c, settings, sessions, logger).Router
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"version":   buildconfig.Version(),
			"documents": len(app.corpus.Documents()),
			"agents":    len(app.corpus.Agents()),
		})
	}
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
			"sessions":       app.sessions.Count(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"build":      buildconfig.VersionInfo(),
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
