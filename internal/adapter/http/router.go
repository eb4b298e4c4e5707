package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/trongnd106/Banking-system/internal/adapter/http/handler"
	"github.com/trongnd106/Banking-system/internal/adapter/http/middleware"
	"github.com/trongnd106/Banking-system/internal/infrastructure/auth"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
	RateLimit          float64
	RateBurst          int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Route("/transactions", func(r chi.Router) {
			r.With(middleware.RequireTransactionCreate()).Post("/", cfg.TransactionHandler.Create)
			r.With(middleware.RequireTransactionView()).Get("/", cfg.TransactionHandler.List)
			r.With(middleware.RequireTransactionView()).Get("/my", cfg.TransactionHandler.ListMine)
			r.With(middleware.RequireTransactionView()).Get("/{id}", cfg.TransactionHandler.Get)
			r.With(middleware.RequireTransactionDelete()).Delete("/{id}", cfg.TransactionHandler.Delete)
		})
	})

	return r
}
