// Package server republishes the persisted endpoint snapshot over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/kyawyelin284/zeus-core/internal/logger"
	"github.com/kyawyelin284/zeus-core/internal/snapshot"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// RootDir is the scanned project root whose snapshot is served.
	RootDir string

	// RequestsPerSecond is the global rate limit. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int
}

// Server serves the persisted snapshot file.
type Server struct {
	cfg     Config
	log     *logger.Logger
	limiter *rate.Limiter
	httpSrv *http.Server
}

// New creates a snapshot server.
func New(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault()
	}

	s := &Server{
		cfg: cfg,
		log: log,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/endpoints", s.handleEndpoints)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe starts the server. It blocks until Shutdown is called
// or the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Event(logger.InfoLevel).
		Str("addr", s.cfg.Addr).
		Str("snapshot", snapshot.Path(s.cfg.RootDir)).
		Msg("Snapshot server listening")

	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			s.log.RequestEvent(r.Method, r.URL.Path, http.StatusTooManyRequests, time.Since(start))
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.RequestEvent(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// handleEndpoints serves the snapshot file verbatim. The file on disk is
// the source of truth; re-marshalling would risk drifting from what the
// scan wrote.
func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := os.ReadFile(snapshot.Path(s.cfg.RootDir))
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "no snapshot available", http.StatusNotFound)
			return
		}
		s.log.WithError(err).Error("Failed to read snapshot")
		http.Error(w, "failed to read snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok"}`)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
