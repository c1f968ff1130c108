package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/countbench/internal/logging"
)

// Server is the optional metrics endpoint. It binds a local address, serves
// /metrics and /healthz, and shuts down with the benchmark.
type Server struct {
	httpServer *http.Server
	metrics    *Metrics
	logger     logging.Logger
}

// New builds a server for the given listen address.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		metrics: metrics,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.metricsMiddleware(s.handleMetrics))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           securityHeaders(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start serves until Shutdown is called. A closed-server error is the normal
// termination path and is swallowed.
func (s *Server) Start() error {
	s.logger.Info("metrics endpoint listening", logging.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// metricsMiddleware tracks request counts around the next handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition. Only GET is meaningful.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Warn("rejected metrics request",
			logging.String("method", r.Method),
			logging.String("remote", r.RemoteAddr))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// securityHeaders sets conservative response headers. The endpoint is meant
// for localhost scrapers, never for rendering in a browser context.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
