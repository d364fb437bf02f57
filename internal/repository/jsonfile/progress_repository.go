package jsonfile

import (
	"context"
	"errors"

	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
	"github.com/mkessler/stemtutor/internal/store"
)

const colProgress = "progress"

type progressRepository struct {
	queue *store.CommitQueue
}

// NewProgressRepository creates a ProgressRepository over the commit queue.
func NewProgressRepository(queue *store.CommitQueue) repository.ProgressRepository {
	return &progressRepository{queue: queue}
}

func (r *progressRepository) Ensure(ctx context.Context) error {
	return r.queue.Do(colProgress, func(s store.Store) error {
		var p models.Progress
		if err := s.Read(colProgress, &p); err == nil {
			return nil
		}
		return s.Write(colProgress, models.DefaultProgress())
	})
}

func (r *progressRepository) Get(ctx context.Context) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	var p models.Progress
	err := r.queue.Do(colProgress, func(s store.Store) error {
		return s.Read(colProgress, &p)
	})
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Merge(ctx context.Context, patch models.ProgressPatch) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var merged models.Progress
	err := r.queue.Do(colProgress, func(s store.Store) error {
		current := models.DefaultProgress()
		if err := s.Read(colProgress, &current); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			// Nothing stored yet: merge onto the defaults.
			current = models.DefaultProgress()
		}
		merged = current.Apply(patch)
		return s.Write(colProgress, merged)
	})
	if err != nil {
		log.Error("failed to merge progress: %v", err)
		return nil, err
	}
	log.Debug("progress merged: xp=%d level=%d streak=%d", merged.TotalXP, merged.Level, merged.Streak)
	return &merged, nil
}
