// Package httpserver provides the TLS-wrapped HTTP server for certserve.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/certserve-go/internal/server/httpserver/handler"
	"github.com/yndnr/certserve-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the request handling chain.
type RouterConfig struct {
	// Root is the document root directory.
	Root string

	// Listing enables generated directory listings.
	Listing bool

	// RateLimit is the per-client request limit (requests/second).
	// Zero disables rate limiting.
	RateLimit int

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics is the optional metrics registry; nil disables
	// instrumentation.
	Metrics *metric.Registry
}

// NewRouter assembles the middleware chain around the static handler.
//
// Order (outermost first): Recover -> RequestID -> AccessLog ->
// Metrics -> RateLimit -> static handler.
//
// @design DS-0302
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var h http.Handler = handler.New(handler.Config{
		Root:    cfg.Root,
		Listing: cfg.Listing,
		Logger:  log,
	})

	// Apply middleware in reverse order (last applied = first executed).
	if cfg.RateLimit > 0 {
		h = RateLimit(cfg.RateLimit)(h)
	}

	if cfg.Metrics != nil {
		h = Metrics(cfg.Metrics)(h)
	}

	h = AccessLog(log)(h)
	h = RequestID()(h)
	h = Recover(log)(h)

	return h
}
