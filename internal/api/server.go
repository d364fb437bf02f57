package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/mkessler/stemtutor/internal/services"
)

// Server holds the services the HTTP handlers dispatch to.
type Server struct {
	Flashcards  services.FlashcardService
	Subjects    services.SubjectService
	Progress    services.ProgressService
	CORSOrigins []string
}

// Routes builds the HTTP surface. The API is consumed by a browser client,
// so CORS wraps everything.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.handleHealth)

		api.Route("/flashcards", func(fc chi.Router) {
			fc.Get("/", s.handleListFlashcards)
			fc.Post("/", s.handleCreateFlashcard)
			fc.Put("/{id}", s.handleUpdateFlashcard)
			fc.Delete("/{id}", s.handleDeleteFlashcard)
			fc.Post("/{id}/review", s.handleReviewFlashcard)
		})

		api.Get("/subjects", s.handleListSubjects)
		api.Post("/subjects", s.handleCreateSubject)

		api.Get("/progress", s.handleGetProgress)
		api.Put("/progress", s.handleUpdateProgress)
	})

	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}
