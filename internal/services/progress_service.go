package services

import (
	"context"
	"time"

	"github.com/mkessler/stemtutor/internal/apperr"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
)

type nowFunc func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// ProgressService handles the singleton learner progress record.
type ProgressService interface {
	GetProgress(ctx context.Context) (*models.Progress, error)
	UpdateProgress(ctx context.Context, patch models.ProgressPatch) (*models.Progress, error)
}

type progressService struct {
	repo repository.ProgressRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(repo repository.ProgressRepository) ProgressService {
	return &progressService{repo: repo}
}

func (s *progressService) GetProgress(ctx context.Context) (*models.Progress, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *progressService) UpdateProgress(ctx context.Context, patch models.ProgressPatch) (*models.Progress, error) {
	log := logger.FromContext(ctx)

	p, err := s.repo.Merge(ctx, patch)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	log.Debug("progress updated: xp=%d level=%d", p.TotalXP, p.Level)
	return p, nil
}
