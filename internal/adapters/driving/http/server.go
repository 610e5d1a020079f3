package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/simple-utils/internal/logger"
)

// Config configures the HTTP API.
type Config struct {
	// ExplainRate is the sustained number of explain requests per second.
	// Zero or less disables rate limiting.
	ExplainRate float64

	// ExplainBurst is the maximum burst of explain requests.
	ExplainBurst int

	// Logger receives request logs. Defaults to logger.Structured().
	Logger *slog.Logger

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server is the HTTP API server.
type Server struct {
	ports   *Ports
	limiter *rate.Limiter
	metrics *metrics
	log     *slog.Logger
	mcp     http.Handler
	router  chi.Router
}

// NewServer creates a new HTTP API server with the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	limit := rate.Inf
	if cfg.ExplainRate > 0 {
		limit = rate.Limit(cfg.ExplainRate)
	}
	burst := cfg.ExplainBurst
	if burst < 1 {
		burst = 1
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Structured()
	}

	s := &Server{
		ports:   ports,
		limiter: rate.NewLimiter(limit, burst),
		metrics: newMetrics(),
		log:     log,
		mcp:     cfg.MCP,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.With(s.rateLimit).Post("/explain", s.handleExplain)
		r.Post("/reverse", s.handleReverse)
		r.Post("/count-words", s.handleCountWords)
		r.Get("/celsius-to-fahrenheit", s.handleCelsiusToFahrenheit)
	})

	if s.mcp != nil {
		r.Mount("/mcp", s.mcp)
	}

	return r
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves the API on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("http shutdown", "error", err)
		}
	}()

	s.log.Info("http api listening", "addr", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// rateLimit rejects requests beyond the configured explain rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
