package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Flashcards.ListFlashcards(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var input models.NewFlashcard
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Flashcards.CreateFlashcard(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.FlashcardPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Flashcards.UpdateFlashcard(r.Context(), id, patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Flashcards.DeleteFlashcard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Flashcard deleted successfully",
	})
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var body struct {
		Correct bool `json:"correct"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Flashcards.ReviewFlashcard(r.Context(), id, body.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("flashcard reviewed: id=%s correct=%t", id, body.Correct)
	writeJSON(w, r, http.StatusOK, card)
}
