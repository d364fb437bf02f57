package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mkessler/stemtutor/internal/apperr"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
)

// FlashcardService handles flashcard business logic: validation, defaults,
// id and timestamp assignment.
type FlashcardService interface {
	ListFlashcards(ctx context.Context) ([]models.Flashcard, error)
	CreateFlashcard(ctx context.Context, input models.NewFlashcard) (*models.Flashcard, error)
	UpdateFlashcard(ctx context.Context, id string, patch models.FlashcardPatch) (*models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id string) error
	ReviewFlashcard(ctx context.Context, id string, correct bool) (*models.Flashcard, error)
}

type flashcardService struct {
	repo repository.FlashcardRepository
	now  nowFunc
}

// NewFlashcardService creates a new FlashcardService.
func NewFlashcardService(repo repository.FlashcardRepository) FlashcardService {
	return &flashcardService{repo: repo, now: utcNow}
}

func (s *flashcardService) ListFlashcards(ctx context.Context) ([]models.Flashcard, error) {
	cards, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return cards, nil
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, input models.NewFlashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	var missing []string
	if strings.TrimSpace(input.Question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(input.Answer) == "" {
		missing = append(missing, "answer")
	}
	if strings.TrimSpace(input.Subject) == "" {
		missing = append(missing, "subject")
	}
	if len(missing) > 0 {
		log.Warn("flashcard create rejected, missing: %s", strings.Join(missing, ", "))
		return nil, apperr.Validation(strings.Join(missing, ", "), "required")
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(difficulty) {
		return nil, apperr.Validation("difficulty", "must be easy, medium or hard")
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	card := models.Flashcard{
		ID:            uuid.NewString(),
		Question:      input.Question,
		Answer:        input.Answer,
		Subject:       input.Subject,
		Difficulty:    difficulty,
		Tags:          tags,
		Created:       s.now(),
		TimesReviewed: 0,
		CorrectCount:  0,
		LastReviewed:  nil,
	}

	if err := s.repo.Insert(ctx, card); err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("flashcard created: id=%s subject=%s", card.ID, card.Subject)
	return &card, nil
}

func (s *flashcardService) UpdateFlashcard(ctx context.Context, id string, patch models.FlashcardPatch) (*models.Flashcard, error) {
	if patch.Difficulty != nil && !models.ValidDifficulty(*patch.Difficulty) {
		return nil, apperr.Validation("difficulty", "must be easy, medium or hard")
	}

	card, err := s.repo.Apply(ctx, id, patch)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if card == nil {
		return nil, apperr.NotFound("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !found {
		return apperr.NotFound("flashcard", id)
	}
	logger.FromContext(ctx).Info("flashcard deleted: id=%s", id)
	return nil
}

func (s *flashcardService) ReviewFlashcard(ctx context.Context, id string, correct bool) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing flashcard: id=%s correct=%t", id, correct)

	card, err := s.repo.RecordReview(ctx, id, correct)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if card == nil {
		return nil, apperr.NotFound("flashcard", id)
	}
	return card, nil
}
