// Package http exposes the projection store over a small JSON API. It is
// the stand-in for the original app's screens and sheets: every endpoint
// maps onto one store operation.
package http

import (
	"log/slog"
	"net/http"
	"time"

	applog "github.com/nambse/gelirgider/internal/log"
	"github.com/nambse/gelirgider/internal/middleware/ratelimit"
	"github.com/nambse/gelirgider/internal/middleware/trace"
	"github.com/nambse/gelirgider/internal/store"
)

type Server struct {
	http.Server
	store           *store.Store
	logger          *slog.Logger
	rateLimiter     *ratelimit.Limiter
	traceMiddleware *trace.Middleware
	startedAt       time.Time
}

// Options tunes the server; zero values fall back to defaults.
type Options struct {
	RequestsPerMinute int
}

func NewServer(addr string, st *store.Store, opts Options) *Server {
	s := &Server{
		store:     st,
		logger:    slog.Default().With(applog.FieldComponent, applog.ComponentHTTP),
		startedAt: time.Now(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: opts.RequestsPerMinute,
	})
	s.traceMiddleware = trace.NewMiddleware(extractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/summary/weekly", s.handleWeeklySummary)

	handler := s.traceMiddleware.Middleware(
		s.rateLimiter.Middleware(extractClientIP)(
			securityHeaders(mux)))

	s.Server = http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// Stop releases server-owned background resources. Call after Shutdown.
func (s *Server) Stop() {
	s.rateLimiter.Stop()
}

// securityHeaders sets conservative response headers on every request.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
