package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/protocol"
	"github.com/loomui/loom/pkg/vdom"
)

// View produces the virtual tree for one render pass. It is called once per
// cycle, always from the session's render goroutine.
type View func() *vdom.VNode

// Session is one WebSocket connection: an engine, its rendered baseline, and
// the view producing virtual trees. The mutex serializes render cycles — one
// diff-and-apply completes, baseline swap included, before the next starts.
type Session struct {
	id     string
	view   View
	engine *vdom.Engine

	mu       sync.Mutex // serializes cycles and conn writes
	baseline []*vdom.RenderedNode
	conn     *websocket.Conn

	config  *Config
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	closed  atomic.Bool
}

func newSession(conn *websocket.Conn, view View, cfg *Config, metrics *Metrics, tracer trace.Tracer) *Session {
	id := newSessionID()
	return &Session{
		id:      id,
		view:    view,
		engine:  vdom.NewEngine(vdom.WithLogger(cfg.Logger)),
		conn:    conn,
		config:  cfg,
		logger:  cfg.Logger.With("session", id),
		metrics: metrics,
		tracer:  tracer,
	}
}

func newSessionID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("s-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf[:])
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// start runs the initial materialization and sends the mount message.
func (s *Session) start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "session.mount")
	defer span.End()

	s.baseline = s.engine.Mount(s.view())
	data, err := protocol.EncodeMount(s.config.Selector, s.baseline)
	if err != nil {
		return fmt.Errorf("encode mount: %w", err)
	}
	span.SetAttributes(attribute.Int("nodes", vdom.ForestCount(s.baseline)))
	return s.writeLocked(data)
}

// RenderCycle diffs the view's fresh tree against the baseline, replaces the
// baseline with the diff's output, and ships the edit script.
func (s *Session) RenderCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "session.render")
	defer span.End()
	started := time.Now()

	edits, next := s.engine.Diff(s.baseline, s.view())
	s.baseline = next
	span.SetAttributes(attribute.Int("edits", len(edits)))

	s.metrics.RenderCycles.Inc()
	s.metrics.EditsEmitted.Add(float64(len(edits)))
	defer func() {
		s.metrics.RenderDuration.Observe(time.Since(started).Seconds())
	}()

	if len(edits) == 0 || (len(edits) == 1 && edits[0].IsNoop()) {
		// Nothing changed; no traffic.
		return nil
	}
	data, err := protocol.EncodeUpdate(s.config.Selector, edits)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	return s.writeLocked(data)
}

func (s *Session) writeLocked(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	s.metrics.BytesSent.Add(float64(len(data)))
	return nil
}

// readLoop consumes client messages until the connection closes.
func (s *Session) readLoop(ctx context.Context) {
	defer s.Close()
	s.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.handleMessage(ctx, msg)
	}
}

func (s *Session) handleMessage(ctx context.Context, msg []byte) {
	ev, err := protocol.DecodeEvent(msg)
	if err != nil {
		s.logger.Warn("bad client message", "error", err)
		return
	}

	handle, ok := s.engine.Registry().Lookup(ev.Handle)
	if !ok {
		// Stale handle: the client raced an update that removed it.
		s.metrics.EventsDropped.Inc()
		s.logger.Debug("event for unknown handle", "handle", ev.Handle, "type", ev.Type)
		return
	}
	s.metrics.EventsDispatched.Inc()

	s.invoke(handle, ev.VDOMEvent())
	if err := s.RenderCycle(ctx); err != nil {
		s.logger.Error("render cycle failed", "error", err)
		s.Close()
	}
}

func (s *Session) invoke(handle *vdom.EventHandle, ev vdom.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic", "event", ev.Type, "panic", r)
		}
	}()
	handle.Invoke(ev)
}

// Close shuts the connection down. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.conn.Close()
	s.logger.Info("session closed")
}
