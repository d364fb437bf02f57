package api

import "net/http"

// handleHealth is a liveness probe: constant payload, no store access.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "STEM Tutor backend is running",
	})
}
