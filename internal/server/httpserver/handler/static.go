// Package handler implements the static file handler.
package handler

import (
	"log/slog"
	"net/http"
	"path"
)

// Config holds configuration for the static handler.
type Config struct {
	// Root is the document root directory.
	Root string

	// Listing enables generated directory listings for directories
	// without an index.html.
	Listing bool

	// Logger for handler-level diagnostics.
	Logger *slog.Logger
}

// staticHandler serves files from the document root.
//
// Path resolution, content-type inference by extension, index.html
// handling, directory listings and range requests are delegated to
// net/http's file server. The handler adds method filtering and the
// option to suppress listings.
type staticHandler struct {
	root       http.Dir
	fileServer http.Handler
	listing    bool
	logger     *slog.Logger
}

// New creates the static file handler for the given document root.
func New(cfg Config) http.Handler {
	root := http.Dir(cfg.Root)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &staticHandler{
		root:       root,
		fileServer: http.FileServer(root),
		listing:    cfg.Listing,
		logger:     logger,
	}
}

// ServeHTTP implements http.Handler.
//
// Only GET and HEAD are supported; anything else gets 405 with an
// Allow header. Per-request filesystem errors (missing file, no
// permission) surface as HTTP error statuses and never affect other
// connections.
func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.logger.Debug("rejected request method",
			"method", r.Method,
			"path", r.URL.Path)
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if !h.listing && h.isIndexlessDir(r.URL.Path) {
		h.logger.Debug("suppressed directory listing", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	h.fileServer.ServeHTTP(w, r)
}

// isIndexlessDir reports whether the request path names a directory
// with no index.html. http.Dir.Open rejects traversal outside the
// root, so the cleaned URL path is safe to probe directly.
func (h *staticHandler) isIndexlessDir(urlPath string) bool {
	upath := path.Clean("/" + urlPath)

	f, err := h.root.Open(upath)
	if err != nil {
		return false
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || !info.IsDir() {
		return false
	}

	idx, err := h.root.Open(path.Join(upath, "index.html"))
	if err != nil {
		return true
	}
	idx.Close()
	return false
}
