package api

import (
	"net/http"

	"github.com/mkessler/stemtutor/internal/models"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.Progress.GetProgress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var patch models.ProgressPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.Progress.UpdateProgress(r.Context(), patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}
