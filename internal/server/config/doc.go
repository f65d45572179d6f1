// Package config defines the server configuration structure.
//
// The configuration is split into sections mirroring the YAML layout:
//
//   - server: listener address
//   - serve: document root and static serving behavior
//   - tls: certificate/key paths and generation parameters
//   - telemetry: optional metrics listener
//   - log: level and format
//
// Default() reproduces the built-in zero-configuration behavior:
// bind 127.0.0.1:8443, serve the working directory, provision
// server.crt/server.key with an RSA-2048 self-signed certificate
// valid for 365 days with subject CN=localhost.
//
// @design DS-0101
package config
