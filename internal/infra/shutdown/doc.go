// Package shutdown provides graceful shutdown for certserve.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-bounded hook execution
//   - Cleanup callback registration, run in reverse order
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	err := h.Wait() // blocks until signaled
//
// @design DS-0404
package shutdown
