// Package metric provides Prometheus metrics for certserve.
//
// Exposed metrics:
//
//   - certserve_http_requests_total{method,code}
//   - certserve_http_request_duration_seconds{method}
//   - certserve_http_requests_in_flight
//
// plus standard Go runtime and process collectors.
//
// The exposition endpoint runs on its own plain-HTTP loopback
// listener (telemetry.metrics_addr) so the TLS file server keeps
// serving nothing but static content. It is disabled by default.
//
// @design DS-0405
package metric
