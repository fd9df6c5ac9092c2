package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/strandkv/strand/internal/store"
	"github.com/strandkv/strand/internal/telemetry/logger"
	"github.com/strandkv/strand/internal/telemetry/metric"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string

	// RateLimit is the maximum number of commands per second per client
	// IP. Zero disables rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:      "127.0.0.1:6379",
		RateLimit: 0,
	}
}

// Server accepts connections and serves the command set against one
// shared store.
type Server struct {
	cfg     *Config
	store   *store.Store
	log     logger.Logger
	metrics *metric.Metrics
	limiter *ipLimiter

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server. The store must be non-nil; logger and metrics
// fall back to defaults when nil.
func New(cfg *Config, st *store.Store, log logger.Logger, metrics *metric.Metrics) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.New()
	}

	s := &Server{
		cfg:     cfg,
		store:   st,
		log:     log,
		metrics: metrics,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit)
	}
	return s
}

// Addr returns the bound listen address, or the configured one before
// Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.cfg.Addr
}

// Start binds the listener and serves connections until Shutdown. It
// returns once the listener is bound; accepting happens on background
// goroutines.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.log.Info("server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.log.Error("accept loop failed", "error", err)
		}
	}()
	return nil
}

// Shutdown closes the listener and waits for in-flight connections to
// finish, or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		firstErr = s.ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(nc)
		}()
	}
}

func (s *Server) serveConn(nc net.Conn) {
	s.metrics.ConnectionsTotal.Inc()
	s.metrics.ConnectionsActive.Inc()
	defer s.metrics.ConnectionsActive.Dec()

	c := &conn{
		id:      ulid.Make().String(),
		netConn: nc,
		srv:     s,
	}
	c.log = s.log.With("conn_id", c.id, "remote", nc.RemoteAddr().String())

	c.log.Debug("connection opened")
	c.run()
	c.log.Debug("connection closed")
}
