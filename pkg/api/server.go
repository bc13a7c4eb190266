// Package api serves the wallpaper method channel to the local UI layer over
// HTTP and WebSocket.
package api

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/pkg/channel"
	"github.com/hexaghost/wallora/util/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// maxCallBytes bounds a single method call envelope.
const maxCallBytes = 64 << 10

// Options configures a Server.
type Options struct {
	Addr           string
	RequestsPerSec float64
	Burst          int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Addr:           net.JoinHostPort(config.ListenHost, strconv.Itoa(config.DefaultPort)),
		RequestsPerSec: config.DefaultRequestsPerSec,
		Burst:          config.DefaultBurst,
	}
}

// Server represents the local HTTP/WebSocket channel server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	addr       string

	codec      channel.Codec
	dispatcher *channel.Dispatcher

	// One call reaches the bridge at a time; bursts are paced.
	calls   *semaphore.Weighted
	limiter *rate.Limiter

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
}

// NewServer creates a new channel server that hands calls to dispatcher.
func NewServer(dispatcher *channel.Dispatcher, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultOptions().Addr
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = config.DefaultRequestsPerSec
	}
	if opts.Burst < 1 {
		opts.Burst = config.DefaultBurst
	}

	s := &Server{
		mux:  http.NewServeMux(),
		addr: opts.Addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkLocalOrigin,
		},
		codec:      channel.DefaultCodec,
		dispatcher: dispatcher,
		calls:      semaphore.NewWeighted(1),
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		clients:    make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/invoke", s.handleInvoke)
}

// checkLocalOrigin accepts native clients (no Origin) and pages served from loopback.
func checkLocalOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Start starts the server. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	log.Printf("channel %s listening on %s", config.ChannelName, s.addr)
	return s.httpServer.ListenAndServe()
}

// Stop closes open WebSocket clients and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientsMu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// invoke paces and serializes a call before it reaches the bridge. A caller
// that goes away while queued is dropped; a call that started runs to completion.
func (s *Server) invoke(ctx context.Context, mc channel.MethodCall) (channel.Reply, error) {
	if mc.ID == "" {
		mc.ID = uuid.NewString()
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return channel.Reply{}, err
	}
	if err := s.calls.Acquire(ctx, 1); err != nil {
		return channel.Reply{}, err
	}
	defer s.calls.Release(1)

	start := time.Now()
	reply := s.dispatcher.Dispatch(mc)
	log.Printf("channel: %s %s -> %s %s (%s)", mc.ID, mc.Method, reply.Status, reply.Code, time.Since(start).Round(time.Millisecond))
	return reply, nil
}

// malformedReply answers a message that is not a method call envelope.
func malformedReply(err error) channel.Reply {
	return channel.Failure("", channel.NewChannelError("INVALID_ARGUMENT", err.Error()))
}
