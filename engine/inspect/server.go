// Package inspect serves read-only debug views of the running scene over HTTP.
// The frame loop publishes snapshots; handlers only ever read the latest published one.
package inspect

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
	clientBuffer = 32
)

// server is the implementation of the Server interface.
type server struct {
	addr   string
	logger *slog.Logger

	latest atomic.Pointer[Snapshot]

	mu      sync.Mutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	router   *mux.Router
}

// Server is the inspect HTTP surface.
type Server interface {
	// Publish stores s as the latest snapshot and pushes its frame stats to websocket clients.
	// Slow clients miss frames rather than block the caller.
	//
	// Parameters:
	//   - s: the snapshot; the caller must not modify it afterwards
	Publish(s *Snapshot)

	// Latest returns the most recently published snapshot, or nil before the first Publish.
	//
	// Returns:
	//   - *Snapshot: the snapshot
	Latest() *Snapshot

	// Handler returns the routed and wrapped HTTP handler.
	//
	// Returns:
	//   - http.Handler: the handler
	Handler() http.Handler

	// ListenAndServe serves until ctx is done, then shuts down and closes websocket clients.
	//
	// Parameters:
	//   - ctx: stops the server
	//
	// Returns:
	//   - error: listen failure; nil after a clean shutdown
	ListenAndServe(ctx context.Context) error
}

var _ Server = &server{}

// NewServer creates a Server for addr.
//
// Parameters:
//   - addr: the listen address, such as "localhost:6060"
//   - options: variadic list of ServerBuilderOption functions
//
// Returns:
//   - Server: the server
func NewServer(addr string, options ...ServerBuilderOption) Server {
	s := &server{
		addr:    addr,
		logger:  slog.Default(),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With("component", "inspect")

	r := mux.NewRouter()
	r.Handle("/scene", compressed(s.handleScene)).Methods(http.MethodGet)
	r.Handle("/scene.yaml", compressed(s.handleSceneYAML)).Methods(http.MethodGet)
	r.Handle("/scene/dump", compressed(s.handleSceneDump)).Methods(http.MethodGet)
	r.Handle("/camera", compressed(s.handleCamera)).Methods(http.MethodGet)
	r.HandleFunc("/ws/frames", s.handleFrames).Methods(http.MethodGet)
	s.router = r
	return s
}

func compressed(fn http.HandlerFunc) http.Handler {
	return handlers.CompressHandler(fn)
}

func (s *server) Publish(snap *Snapshot) {
	s.latest.Store(snap)

	msg, err := json.Marshal(snap.Stats)
	if err != nil {
		s.logger.Warn("encode frame stats", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (s *server) Latest() *Snapshot {
	return s.latest.Load()
}

func (s *server) Handler() http.Handler {
	h := handlers.CustomLoggingHandler(io.Discard, s.router, s.logRequest)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}), handlers.PrintRecoveryStack(false))(h)
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("inspect server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrapf(err, "listen on %s", s.addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeClients()
	if err != nil {
		return errors.Wrap(err, "shutdown inspect server")
	}
	return nil
}

func (s *server) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	s.logger.Debug("request", "method", p.Request.Method, "path", p.URL.Path, "status", p.StatusCode, "size", p.Size)
}

// latestOr404 writes 404 and returns nil when nothing has been published yet.
func (s *server) latestOr404(w http.ResponseWriter) *Snapshot {
	snap := s.latest.Load()
	if snap == nil {
		http.Error(w, "no frame rendered yet", http.StatusNotFound)
	}
	return snap
}

func (s *server) handleScene(w http.ResponseWriter, _ *http.Request) {
	if snap := s.latestOr404(w); snap != nil {
		s.writeJSON(w, snap.Scene)
	}
}

func (s *server) handleSceneYAML(w http.ResponseWriter, _ *http.Request) {
	snap := s.latestOr404(w)
	if snap == nil {
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap.Scene); err != nil {
		s.logger.Warn("encode scene yaml", "error", err)
	}
	enc.Close()
}

func (s *server) handleSceneDump(w http.ResponseWriter, _ *http.Request) {
	if snap := s.latestOr404(w); snap != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		scene.Dump(w, snap.Scene)
	}
}

func (s *server) handleCamera(w http.ResponseWriter, _ *http.Request) {
	if snap := s.latestOr404(w); snap != nil {
		s.writeJSON(w, snap.Camera)
	}
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("encode json", "error", err)
	}
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error("handler panic", "panic", v)
}
