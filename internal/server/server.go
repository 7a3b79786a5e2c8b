// Package server provides the HTTP JSON API over the employee store.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hr-dashboard/internal/employee"
	"github.com/jonathan/hr-dashboard/internal/server/ratelimit"
)

// Server exposes the employee store through REST endpoints.
type Server struct {
	httpServer  *http.Server
	store       *employee.Store
	log         *zap.Logger
	rateLimiter *ratelimit.Limiter
	metrics     *metrics
	debouncer   *employee.Debouncer
}

// Config holds server configuration.
type Config struct {
	Port   int
	Store  *employee.Store
	Logger *zap.Logger
}

// New creates a new server instance around an already-constructed store.
// The store is the single shared instance for the session; the server never
// creates its own.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		store:   cfg.Store,
		log:     log,
		metrics: newMetrics(),
	}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.debouncer = employee.NewDebouncer(employee.DefaultDebounce, cfg.Store.SetSearchTerm)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	// Grid and detail views
	mux.HandleFunc("GET /employees", s.handleListEmployees)
	mux.HandleFunc("GET /employees/{id}", s.handleGetEmployee)
	mux.HandleFunc("POST /employees/{id}/promote", s.handlePromoteEmployee)

	// Filter criteria
	mux.HandleFunc("GET /filters", s.handleGetFilters)
	mux.HandleFunc("POST /filters/search", s.handleSearch)
	mux.HandleFunc("POST /filters/search/debounced", s.handleSearchDebounced)
	mux.HandleFunc("POST /filters/departments/{department}/toggle", s.handleToggleDepartment)
	mux.HandleFunc("POST /filters/ratings/{rating}/toggle", s.handleToggleRating)
	mux.HandleFunc("POST /filters/reset", s.handleResetFilters)

	// Bookmarks
	mux.HandleFunc("GET /bookmarks", s.handleListBookmarks)
	mux.HandleFunc("GET /bookmarks/{id}", s.handleGetBookmark)
	mux.HandleFunc("POST /bookmarks/{id}/toggle", s.handleToggleBookmark)

	// Analytics
	mux.HandleFunc("GET /analytics/departments", s.handleDepartmentAnalytics)
	mux.HandleFunc("GET /analytics/top-performers", s.handleTopPerformers)
	mux.HandleFunc("GET /analytics/bookmark-trends", s.handleBookmarkTrends)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRequestID(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until the context is canceled or a termination signal
// arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.debouncer.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.log.Info("server stopped")
	return err
}

// withRequestID tags each request with a correlation id.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging and the request counter.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.metrics.requests.WithLabelValues(r.Method, r.URL.Path).Inc()
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
			zap.Duration("duration", time.Since(start)))
	})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r))
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if s.store.Err() != "" {
		status = "degraded"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": status})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// RemoteAddr is "IP:port"; the IP alone keys the rate limiter.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}
