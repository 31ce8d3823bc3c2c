package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Server hosts one view behind a mount page, a live WebSocket endpoint, and
// a metrics endpoint.
type Server struct {
	config  *Config
	view    View
	logger  *slog.Logger
	router  chi.Router
	metrics *Metrics
	tracer  trace.Tracer

	upgrader websocket.Upgrader
	registry *prometheus.Registry

	mu       sync.Mutex
	sessions map[*Session]struct{}
	http     *http.Server
}

// New creates a server for the given view. A nil config uses defaults.
func New(view View, cfg *Config) *Server {
	cfg = cfg.withDefaults()
	registry := prometheus.NewRegistry()

	s := &Server{
		config:   cfg,
		view:     view,
		logger:   cfg.Logger,
		metrics:  NewMetrics(registry),
		tracer:   otel.Tracer("loom/server"),
		registry: registry,
		sessions: make(map[*Session]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// Handler returns the server's HTTP handler, for embedding or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	s.http = &http.Server{Addr: s.config.Address, Handler: s.router}
	srv := s.http
	s.mu.Unlock()

	s.logger.Info("listening", "addr", s.config.Address)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes active sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	srv := s.http
	for sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writeShell(w, s.config); err != nil {
		s.logger.Error("shell render failed", "error", err)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.view, s.config, s.metrics, s.tracer)
	s.track(sess)
	defer s.untrack(sess)

	s.logger.Info("session connected", "session", sess.ID(), "remote", r.RemoteAddr)
	if err := sess.start(r.Context()); err != nil {
		s.logger.Error("mount failed", "session", sess.ID(), "error", err)
		sess.Close()
		return
	}
	sess.readLoop(r.Context())
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	s.metrics.ActiveSessions.Inc()
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	s.metrics.ActiveSessions.Dec()
}
