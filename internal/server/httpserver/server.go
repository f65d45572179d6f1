// Package httpserver provides the TLS-wrapped HTTP server for certserve.
//
// It uses the Go standard library net/http for implementation; the
// listener is bound explicitly so bind failures are reported before
// the TLS layer is attached.
package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrNotListening is returned by Serve when Listen has not been called.
var ErrNotListening = errors.New("httpserver: not listening, call Listen first")

// Server represents the HTTPS server.
//
// @design DS-0302
type Server struct {
	httpServer *http.Server
	tlsConfig  *tls.Config
	listener   net.Listener
	addr       string
}

// New creates a new server for the given bind address. The TLS config
// must carry the server certificate; every accepted connection
// completes a TLS handshake before any HTTP bytes are parsed.
func New(addr string, handler http.Handler, tlsConfig *tls.Config) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		tlsConfig: tlsConfig,
		addr:      addr,
	}
}

// Listen binds the TCP listener. A port already in use or an invalid
// address fails here, fatal at startup.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httpserver: bind %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound listener address, useful when the configured
// port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve wraps the bound listener with TLS and blocks serving requests
// until Shutdown is called. Returns http.ErrServerClosed after a clean
// shutdown, like net/http.
func (s *Server) Serve() error {
	if s.listener == nil {
		return ErrNotListening
	}

	ln := s.listener
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server: it stops accepting new
// connections and waits for in-flight requests within the context
// deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
