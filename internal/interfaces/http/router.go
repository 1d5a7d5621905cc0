// Package http wires the route tree and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware for the route
// tree. Nil middleware entries are skipped.
type RouterConfig struct {
	SDSHandler    *handlers.SDSHandler
	HealthHandler *handlers.HealthHandler

	CORSMiddleware      *middleware.CORSMiddleware
	LoggingMiddleware   *middleware.LoggingMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	MetricsMiddleware   *middleware.MetricsMiddleware

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter builds the complete route tree: probe endpoints, the
// metrics scrape target, and the versioned SDS API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware.Handler)
	}
	if cfg.RateLimitMiddleware != nil {
		r.Use(cfg.RateLimitMiddleware.Handler)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerSDSRoutes(api, cfg.SDSHandler)
	})

	return r
}

func registerSDSRoutes(r chi.Router, h *handlers.SDSHandler) {
	if h == nil {
		return
	}
	r.Route("/sds", func(sr chi.Router) {
		sr.Post("/generate", h.Generate)
		sr.Get("/catalog", h.Catalog)
		sr.Get("/sections/{number}", h.Section)
		sr.Get("/export/{format}", h.Export)
		sr.Get("/documents", h.Documents)
		sr.Get("/documents/{id}", h.Document)
		sr.Get("/documents/{id}/download", h.DocumentDownload)
	})
}

//Personal.AI order the ending
