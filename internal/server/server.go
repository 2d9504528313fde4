package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"notification-router/internal/common/logging"
)

// Server represents an HTTP server
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
	errs    chan error
}

// DefaultWriteTimeout bounds how long a handler may take to write its response
const DefaultWriteTimeout = 30 * time.Second

// Option customizes the underlying http.Server
type Option func(*http.Server)

// WithWriteTimeout overrides DefaultWriteTimeout; non-positive values are ignored
func WithWriteTimeout(d time.Duration) Option {
	return func(srv *http.Server) {
		if d > 0 {
			srv.WriteTimeout = d
		}
	}
}

// New creates a new server instance
func New(handler http.Handler, port, tlsCert, tlsKey string, opts ...Option) *Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
	for _, opt := range opts {
		opt(srv)
	}

	return &Server{
		srv:     srv,
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
		errs:    make(chan error, 1),
	}
}

// Start binds the listener and serves in the background. Errors after a
// successful bind are reported on Errors.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener in the background
func (s *Server) Serve(ln net.Listener) error {
	useTLS := s.tlsCert != "" && s.tlsKey != ""
	if useTLS {
		s.srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	logging.Info("HTTP server listening",
		logging.String("addr", ln.Addr().String()),
		logging.Bool("tls", useTLS))

	go func() {
		var err error
		if useTLS {
			err = s.srv.ServeTLS(ln, s.tlsCert, s.tlsKey)
		} else {
			err = s.srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
		close(s.errs)
	}()
	return nil
}

// Errors reports a fatal serve error. It is closed when the server stops.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
