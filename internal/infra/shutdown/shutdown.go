// Package shutdown provides graceful shutdown handling.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Signals are the process signals treated as a shutdown request.
// An interrupt is a normal stop, not an error: after the hooks run
// the process exits zero.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// Handler runs registered hooks when a shutdown signal arrives.
type Handler struct {
	timeout time.Duration
	hooks   []func(context.Context) error
	mu      sync.Mutex
	done    chan struct{}
	sigCh   chan os.Signal
}

// NewHandler creates a new shutdown handler. The timeout bounds the
// total time hooks get to drain in-flight work.
func NewHandler(timeout time.Duration) *Handler {
	h := &Handler{
		timeout: timeout,
		hooks:   make([]func(context.Context) error, 0),
		done:    make(chan struct{}),
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(h.sigCh, Signals...)
	return h
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Trigger requests shutdown without a process signal. Used by tests
// and by fatal runtime errors that should drain like an interrupt.
func (h *Handler) Trigger() {
	select {
	case h.sigCh <- syscall.SIGTERM:
	default:
	}
}

// Wait blocks until a shutdown signal arrives, then executes the
// hooks in reverse order. The last hook error wins.
func (h *Handler) Wait() error {
	<-h.sigCh

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]func(context.Context) error, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			lastErr = err
		}
	}

	close(h.done)
	return lastErr
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
