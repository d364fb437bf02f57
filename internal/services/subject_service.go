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

// SubjectService handles subject business logic. Flashcard counts are
// derived from the flashcards collection on every list, so they cannot
// drift from the actual records.
type SubjectService interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, input models.NewSubject) (*models.Subject, error)
}

type subjectService struct {
	repo       repository.SubjectRepository
	flashcards repository.FlashcardRepository
	now        nowFunc
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(repo repository.SubjectRepository, flashcards repository.FlashcardRepository) SubjectService {
	return &subjectService{repo: repo, flashcards: flashcards, now: utcNow}
}

func (s *subjectService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx)

	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	counts, err := s.flashcards.CountBySubject(ctx)
	if err != nil {
		log.Warn("failed to count flashcards per subject: %v", err)
		counts = map[string]int{}
	}
	for i := range subjects {
		subjects[i].FlashcardCount = counts[subjects[i].ID]
	}
	return subjects, nil
}

func (s *subjectService) CreateSubject(ctx context.Context, input models.NewSubject) (*models.Subject, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(input.Name) == "" {
		log.Warn("subject create rejected, missing name")
		return nil, apperr.Validation("name", "required")
	}

	icon := input.Icon
	if icon == "" {
		icon = models.DefaultSubjectIcon
	}
	color := input.Color
	if color == "" {
		color = models.DefaultSubjectColor
	}

	subject := models.Subject{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Icon:           icon,
		Color:          color,
		Created:        s.now(),
		FlashcardCount: 0,
	}

	if err := s.repo.Insert(ctx, subject); err != nil {
		log.Error("failed to insert subject: %v", err)
		return nil, apperr.Internal(err)
	}
	log.Info("subject created: id=%s name=%s", subject.ID, subject.Name)
	return &subject, nil
}
