package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/preston-bernstein/nba-elo-sim/internal/poller"
)

// stubPoller implements Poller for tests.
type stubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *stubPoller) Status() poller.Status {
	return p.StatusVal
}

// stubHTTPServer implements httpServer for tests.
type stubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// blockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type blockingHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
	Unblock       chan struct{}
}

func (b *blockingHTTPServer) ListenAndServe() error {
	return nil
}

func (b *blockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *blockingHTTPServer) Addr() string {
	return b.AddrVal
}

func (b *blockingHTTPServer) Handler() http.Handler {
	return b.HandlerVal
}

// errHTTPServer returns an error on ListenAndServe; Shutdown increments a counter.
type errHTTPServer struct {
	ShutdownCalls int
}

func (e *errHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *errHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.ShutdownCalls++
	return nil
}

func (e *errHTTPServer) Addr() string {
	return ":0"
}

func (e *errHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

// closeableHTTPServer returns ErrServerClosed from ListenAndServe.
type closeableHTTPServer struct {
	ShutdownCalls int
}

func (c *closeableHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (c *closeableHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	c.ShutdownCalls++
	return nil
}

func (c *closeableHTTPServer) Addr() string {
	return ":0"
}

func (c *closeableHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}
