package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newDocRoot builds a document root with known contents:
//
//	index.html
//	hello.txt
//	assets/app.css
//	empty/          (no index)
func newDocRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"index.html":     "<html><body>home</body></html>",
		"hello.txt":      "hello, world\n",
		"assets/app.css": "body { color: red }",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatalf("mkdir empty: %v", err)
	}

	return root
}

func doRequest(t *testing.T, h http.Handler, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestServeFile(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	resp := doRequest(t, h, http.MethodGet, "/hello.txt")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "hello, world\n" {
		t.Errorf("body = %q, want file contents", body)
	}
}

func TestContentType(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	tests := []struct {
		path string
		want string
	}{
		{"/index.html", "text/html"},
		{"/assets/app.css", "text/css"},
		{"/hello.txt", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := doRequest(t, h, http.MethodGet, tt.path)
			resp.Body.Close()
			ct := resp.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, tt.want) {
				t.Errorf("Content-Type = %q, want prefix %q", ct, tt.want)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	resp := doRequest(t, h, http.MethodGet, "/no-such-file")
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDirectoryListing(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	resp := doRequest(t, h, http.MethodGet, "/assets/")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "app.css") {
		t.Errorf("listing should enumerate entries, got:\n%s", body)
	}
}

func TestDirectoryListing_Disabled(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: false})

	resp := doRequest(t, h, http.MethodGet, "/assets/")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when listings are disabled", resp.StatusCode)
	}

	// A directory with an index file is still served.
	resp = doRequest(t, h, http.MethodGet, "/")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 for directory with index.html", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "home") {
		t.Errorf("expected index.html contents, got:\n%s", body)
	}
}

func TestIndexServedForRoot(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	resp := doRequest(t, h, http.MethodGet, "/")
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "home") {
		t.Errorf("root should serve index.html, got:\n%s", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp := doRequest(t, h, method, "/hello.txt")
			resp.Body.Close()

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", resp.StatusCode)
			}
			if allow := resp.Header.Get("Allow"); allow != "GET, HEAD" {
				t.Errorf("Allow = %q, want %q", allow, "GET, HEAD")
			}
		})
	}
}

func TestHead(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: true})

	resp := doRequest(t, h, http.MethodHead, "/hello.txt")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("HEAD body should be empty, got %d bytes", len(body))
	}
}

func TestRejectionsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := New(Config{Root: newDocRoot(t), Listing: false, Logger: log})

	resp := doRequest(t, h, http.MethodPost, "/hello.txt")
	resp.Body.Close()
	if !strings.Contains(buf.String(), "rejected request method") {
		t.Errorf("405 should be logged, got:\n%s", buf.String())
	}

	buf.Reset()
	resp = doRequest(t, h, http.MethodGet, "/assets/")
	resp.Body.Close()
	if !strings.Contains(buf.String(), "suppressed directory listing") {
		t.Errorf("suppressed listing should be logged, got:\n%s", buf.String())
	}
}

func TestTraversalRejected(t *testing.T) {
	h := New(Config{Root: newDocRoot(t), Listing: false})

	// The cleaned path resolves inside the root, so this must not
	// escape to the parent directory.
	resp := doRequest(t, h, http.MethodGet, "/../../etc/passwd")
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		t.Error("traversal request should not be served")
	}
}
