// Package main provides the entry point for certserve.
//
// certserve serves a directory tree over TLS-wrapped HTTP/1.x on a
// loopback address, provisioning a self-signed certificate on first
// run:
//
//   - On startup, server.crt/server.key are generated (RSA-2048,
//     CN=localhost, valid 365 days) unless both already exist
//   - Existing files are trusted as-is; stale or mismatched material
//     fails at TLS load time, before the first accept
//   - GET/HEAD requests are mapped onto the document root; other
//     methods get 405
//
// Usage:
//
//	certserve [flags]
//	certserve --config /path/to/config.yaml
//
// Running with no arguments uses the built-in defaults: bind
// 127.0.0.1:8443 and serve the working directory. Exit status is 0
// after an interrupt-triggered shutdown and nonzero when certificate
// provisioning, TLS material loading, or the bind fails at startup.
//
// @design DS-0501
package main
