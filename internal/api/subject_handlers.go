package api

import (
	"net/http"

	"github.com/mkessler/stemtutor/internal/models"
)

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.Subjects.ListSubjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, subjects)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var input models.NewSubject
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	subject, err := s.Subjects.CreateSubject(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, subject)
}
