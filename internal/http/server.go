package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Serg-Vas/financial-dashboard/internal/dataset"
	"github.com/Serg-Vas/financial-dashboard/internal/log"
	"github.com/Serg-Vas/financial-dashboard/internal/services"
)

// Options tunes request handling.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// RequestTimeout bounds each dataset load.
	RequestTimeout time.Duration
	// RequestsPerMinute is the per-client limit on /api routes; 0 disables it.
	RequestsPerMinute int
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = services.DefaultPageSize
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 5 * time.Second
	}
	return o
}

type Server struct {
	http.Server

	// Now is the reference clock for overdue checks.
	Now func() time.Time

	source      dataset.LoanSource
	logger      *log.Logger
	opts        Options
	rateLimiter *rateLimiter
	router      *mux.Router

	shutdownOnce sync.Once
}

// NewServer wires the API routes over source, returning a ready-to-run server.
func NewServer(addr string, source dataset.LoanSource, logger *log.Logger, opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		Now:    time.Now,
		source: source,
		logger: logger.WithComponent(log.ComponentHTTP),
		opts:   opts,
		router: mux.NewRouter().StrictSlash(true),
	}
	if opts.RequestsPerMinute > 0 {
		s.rateLimiter = newRateLimiter(opts.RequestsPerMinute)
	}

	s.router.Use(log.RequestLogger(logger))
	s.router.Use(withSecurityHeaders)
	s.router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	// API routes live on the root router so a method mismatch yields 405.
	s.handleAPI("/api/loans", s.handleLoans)
	s.handleAPI("/api/metrics", s.handleMetrics)
	s.handleAPI("/api/rankings", s.handleRankings)
	s.handleAPI("/api/summary", s.handleSummary)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}
	return s
}

// Shutdown stops the rate limiter cleanup and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// handleAPI registers a GET route, rate limited when a limit is configured.
func (s *Server) handleAPI(path string, h http.HandlerFunc) {
	var handler http.Handler = h
	if s.rateLimiter != nil {
		handler = s.withRateLimit(handler)
	}
	s.router.Handle(path, handler).Methods(http.MethodGet)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: http.StatusText(http.StatusMethodNotAllowed)})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorBody{Error: http.StatusText(http.StatusNotFound)})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
