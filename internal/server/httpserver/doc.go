// Package httpserver provides the TLS-wrapped HTTP server for certserve.
//
// This package serves static content over HTTPS using stdlib net/http:
//
//   - Explicit bind (Listen) so port-in-use errors are fatal at
//     startup, before the first accept
//   - TLS via tls.NewListener; the handshake completes before any
//     HTTP parsing
//   - Middleware chain: Recover, RequestID, AccessLog, Metrics,
//     RateLimit
//   - Graceful shutdown through http.Server.Shutdown
//
// Each accepted connection is handled on its own goroutine by
// net/http; no per-request state is shared across connections.
//
// @design DS-0302
package httpserver
