// Package logger provides structured logging for certserve.
//
// This package wraps log/slog with a small application-facing
// interface so that packages do not depend on a concrete handler:
//
//   - JSON output by default, text for local reading
//   - Level changes at runtime via SetLevel (config reload)
//   - Request ID propagation through context (see L)
//
// @design DS-0402
package logger
