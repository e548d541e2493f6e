package api

import (
	"net/http"

	"github.com/shaharia-lab/nomadweb/internal/build"
)

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, build.Fields())
}
