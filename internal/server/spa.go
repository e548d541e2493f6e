package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shaharia-lab/nomadweb/internal/api"
	"github.com/shaharia-lab/nomadweb/internal/frontend"
)

const (
	noCache = "no-cache, no-store, must-revalidate"

	msgUnavailable  = "Frontend non disponibile"
	msgIndexMissing = "index.html non trovato nel percorso di build"
	msgInternal     = "internal server error"
)

// requestKind is how a path not matched by an explicit route is treated.
type requestKind int

const (
	kindRoute requestKind = iota
	kindAsset
	kindAPI
)

// classify inspects only the path; the query string never matters.
func classify(urlPath string) requestKind {
	if strings.HasPrefix(urlPath, api.Prefix) {
		return kindAPI
	}
	if path.Ext(urlPath) != "" {
		return kindAsset
	}
	return kindRoute
}

// handleFrontend serves static files from the resolved root and falls back
// to the injected entry document for client-side routes.
func (s *Server) handleFrontend(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	kind := classify(clean)

	if kind == kindAPI {
		s.metrics.served(outcomeAPINotFound)
		api.NotFound(w, r)
		return
	}

	if s.devProxy != nil {
		s.metrics.served(outcomeDevProxy)
		s.devProxy.ServeHTTP(w, r)
		return
	}

	if !s.root.Available() {
		s.metrics.served(outcomeUnavailable)
		writeText(w, http.StatusNotFound, msgUnavailable)
		return
	}

	if clean == "/" || clean == "/"+frontend.IndexFile {
		s.serveIndex(w, r)
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && s.serveStatic(w, r, clean) {
		s.metrics.served(outcomeStatic)
		return
	}

	if kind == kindAsset {
		s.metrics.served(outcomeAssetNotFound)
		writeText(w, http.StatusNotFound, "Asset not found: "+r.URL.EscapedPath())
		return
	}

	s.serveIndex(w, r)
}

// serveStatic serves clean from the root if it names a regular file.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, clean string) bool {
	full := filepath.Join(s.root.Dir(), filepath.FromSlash(clean))
	f, err := os.Open(full) //nolint:gosec // clean is rooted and cleaned
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if ct, ok := frontend.ContentType(full); ok {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// serveIndex reads index.html, injects the public environment and writes
// it in one piece. Nothing is written until the document is ready.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	indexPath := s.root.IndexPath()
	data, err := os.ReadFile(indexPath) //nolint:gosec // path comes from startup resolution
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		if errors.Is(err, fs.ErrNotExist) {
			s.metrics.served(outcomeIndexMissing)
			s.logger.Error("index.html not found",
				slog.String("path", indexPath),
				slog.String("request_id", reqID),
			)
			writeText(w, http.StatusInternalServerError, msgIndexMissing)
			return
		}
		s.metrics.served(outcomeIndexError)
		s.logger.Error("reading index.html",
			slog.String("path", indexPath),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}

	html, placement := frontend.Inject(string(data), s.payload(), s.placeholder)
	s.metrics.served(outcomeSPA)
	s.metrics.injected(placement)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", noCache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleEnvScript serves the public environment as a script for pages that
// load it with <script src="/env.js">.
func (s *Server) handleEnvScript(w http.ResponseWriter, _ *http.Request) {
	s.metrics.served(outcomeEnv)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", noCache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(frontend.Script(s.payload())))
}

func (s *Server) payload() string {
	return s.publicEnv.Payload(s.lookup)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
