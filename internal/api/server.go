package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Prefix is the path reserved for API routes. Nothing under it is ever
// answered with frontend content.
const Prefix = "/api"

// NotFoundMessage is the error body for unmatched API routes.
const NotFoundMessage = "API route not found"

// Server holds the dependencies of the API handlers.
type Server struct {
	logger *slog.Logger
}

// New creates a new API Server.
func New(logger *slog.Logger) *Server {
	return &Server{logger: logger}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	r.Use(middleware.GetHead)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)
}

// NotFound answers an unmatched API route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, NotFoundMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
