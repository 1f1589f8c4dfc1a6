// Package remote serves interactive sessions over socket.io. Each connection
// gets its own session.Session; clients send configure, refresh and copy
// events and receive result and copied events in return.
package remote

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/session"
	"github.com/zishang520/socket.io/v2/socket"
)

// DefaultWidth is the grid width used until a client reports its own.
const DefaultWidth = 84

// Options configures a Server.
type Options struct {
	Loader   session.WordLoader
	Base     config.Configuration
	Profiles []*config.Profile
	Width    int
	// Registerer receives the server's metrics. It may be nil.
	Registerer prometheus.Registerer
}

// Server is a socket.io endpoint. It is mounted on an HTTP mux through
// Handler.
type Server struct {
	logger  *slog.Logger
	opts    Options
	io      *socket.Server
	metrics *metrics

	mu      sync.Mutex
	clients map[socket.SocketId]*client
}

// NewServer creates a server whose handlers log through logger. A nil logger
// discards output.
func NewServer(logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	s := &Server{
		logger:  logger,
		opts:    opts,
		io:      socket.NewServer(nil, nil),
		metrics: newMetrics(opts.Registerer),
		clients: make(map[socket.SocketId]*client),
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler returns the socket.io HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every client and ends their sessions.
func (s *Server) Close() {
	s.io.Close(nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := s.sessionContext()
	for id, c := range s.clients {
		c.close(ctx)
		delete(s.clients, id)
	}
	s.metrics.sessions.Set(0)
}

func (s *Server) onConnection(args ...any) {
	sock, ok := args[0].(*socket.Socket)
	if !ok {
		return
	}
	c := newClient(s.opts.Loader, s.opts.Base, s.opts.Profiles, s.opts.Width, s.metrics)
	ctx := s.sessionContext("session", c.id, "socket", sock.Id())
	logger := ctxlog.FromContext(ctx)

	s.mu.Lock()
	s.clients[sock.Id()] = c
	s.mu.Unlock()
	s.metrics.sessions.Inc()
	logger.Info("Remote session opened.", "remote_addr", sock.Handshake().Address)

	emit := func(event string, payload any) {
		if err := sock.Emit(event, payload); err != nil {
			logger.Warn("Emit failed.", "event", event, "error", err)
		}
	}

	sock.On(EventConfigure, func(datas ...any) {
		s.metrics.events.WithLabelValues(EventConfigure).Inc()
		p, err := decodeConfigure(datas)
		if err != nil {
			emit(EventResult, ResultPayload{Session: c.id, Error: err.Error()})
			return
		}
		emit(EventResult, c.configure(ctx, p))
	})
	sock.On(EventRefresh, func(...any) {
		s.metrics.events.WithLabelValues(EventRefresh).Inc()
		emit(EventResult, c.refresh(ctx))
	})
	sock.On(EventCopy, func(...any) {
		s.metrics.events.WithLabelValues(EventCopy).Inc()
		emit(EventCopied, c.copy())
	})
	sock.On("disconnect", func(reason ...any) {
		s.mu.Lock()
		_, live := s.clients[sock.Id()]
		delete(s.clients, sock.Id())
		s.mu.Unlock()
		if live {
			s.metrics.sessions.Dec()
			c.close(ctx)
		}
		logger.Info("Remote session closed.", "reason", reason)
	})

	emit(EventResult, c.start(ctx))
}

// sessionContext returns a context for socket callbacks. It is detached from
// any request or server lifetime so session teardown can still log.
func (s *Server) sessionContext(args ...any) context.Context {
	return ctxlog.WithLogger(context.Background(), s.logger.With(args...))
}
