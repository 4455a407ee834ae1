// Package resources serves the static frontend. The entry pages are held
// in memory and reloaded on change, so a deploy that rewrites index.html
// takes effect without a restart.
package resources

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Entry pages served from memory. Everything else falls through to the
// file server.
const (
	IndexPage        = "index.html"
	AuthCallbackPage = "auth-callback.html"
)

// blockedPrefixes are paths the static file server must never expose.
var blockedPrefixes = []string{"/backend", "/node_modules"}

type Pages struct {
	mu    sync.RWMutex
	dir   string
	pages map[string][]byte
}

// NewPages loads the entry pages from dir and watches the directory for
// changes.
func NewPages(dir string) *Pages {
	p := &Pages{
		dir:   dir,
		pages: make(map[string][]byte),
	}
	p.Reload()

	err := watchDir(dir, func() {
		p.Reload()
	})
	if err != nil {
		log.Fatalf("Failed to start page watcher: %v", err)
	}

	return p
}

func (p *Pages) Reload() {
	loaded := make(map[string][]byte)
	for _, name := range []string{IndexPage, AuthCallbackPage} {
		content, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			log.Printf("pages: failed to read '%s': %v\n", name, err)
			continue
		}
		loaded[name] = content
	}

	p.mu.Lock()
	p.pages = loaded
	p.mu.Unlock()

	log.Printf("Loaded %d page(s) from %s\n", len(loaded), p.dir)
}

// Serve returns a handler that writes the named in-memory page.
func (p *Pages) Serve(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.RLock()
		content, ok := p.pages[name]
		p.mu.RUnlock()

		if !ok {
			log.Printf("pages: '%s' not loaded\n", name)
			http.Error(w, "Could not load app. Check that index.html exists at project root.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(content)
	}
}

// Static serves the rest of the frontend directory, refusing the blocked
// prefixes.
func (p *Pages) Static() http.Handler {
	fileServer := http.FileServer(http.Dir(p.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range blockedPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
