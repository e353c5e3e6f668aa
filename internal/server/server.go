package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"syscall"
	"time"

	"ollamastub/pkg/logging"
)

// DefaultShutdownTimeout bounds Shutdown when the caller's context has no deadline.
const DefaultShutdownTimeout = 5 * time.Second

// BindError reports a failure to listen on the requested address.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// InUse reports whether the address was already taken by another process.
func (e *BindError) InUse() bool {
	return errors.Is(e.Err, syscall.EADDRINUSE)
}

// Server owns the listener and the http.Server for the stub endpoint.
type Server struct {
	handler http.Handler

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	host       string
	port       int
	running    bool
}

// New creates a Server that will serve handler.
func New(handler http.Handler) *Server {
	return &Server{handler: handler}
}

// Listen binds host:port. Port 0 picks a free port. Failures are returned as
// *BindError.
func (s *Server) Listen(host string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return fmt.Errorf("server already listening on port %d", s.port)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}

	s.listener = listener
	s.host = host
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 30 * time.Second,
	}
	return nil
}

// Serve accepts connections until Shutdown is called. Each connection is
// handled on its own goroutine. It returns nil after a clean shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return errors.New("server is not listening")
	}
	httpServer := s.httpServer
	listener := s.listener
	s.running = true
	s.mu.Unlock()

	err := httpServer.Serve(listener)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", listener.Addr(), err)
	}
	return nil
}

// Shutdown gracefully stops the server, forcing connections closed when the
// deadline passes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	shutdownCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, DefaultShutdownTimeout)
		defer cancel()
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		httpServer.Close()
		logging.Warn("Server", "Force closed stub server: %v", err)
		return err
	}
	return nil
}

// Port returns the bound port.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port
}

// IsRunning reports whether Serve is active.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Endpoint returns the full URL of the generate endpoint.
func (s *Server) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EndpointURL(s.host, s.port)
}

// EndpointURL builds the generate URL for host and port.
func EndpointURL(host string, port int) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + GeneratePath
}

// WaitForReady polls until the server accepts TCP connections or ctx ends.
func (s *Server) WaitForReady(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.IsRunning() {
				continue
			}
			s.mu.RLock()
			addr := s.listener.Addr().String()
			s.mu.RUnlock()
			conn, err := net.DialTimeout("tcp", addr, time.Second)
			if err == nil {
				conn.Close()
				return nil
			}
		}
	}
}
