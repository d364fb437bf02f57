package jsonfile

import (
	"context"
	"errors"

	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
	"github.com/mkessler/stemtutor/internal/store"
)

const colSubjects = "subjects"

type subjectRepository struct {
	queue *store.CommitQueue
}

// NewSubjectRepository creates a SubjectRepository over the commit queue.
func NewSubjectRepository(queue *store.CommitQueue) repository.SubjectRepository {
	return &subjectRepository{queue: queue}
}

func (r *subjectRepository) Ensure(ctx context.Context) error {
	return r.queue.Do(colSubjects, func(s store.Store) error {
		var subjects []models.Subject
		if err := s.Read(colSubjects, &subjects); err == nil {
			return nil
		}
		return s.Write(colSubjects, []models.Subject{})
	})
}

func (r *subjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	var subjects []models.Subject
	err := r.queue.Do(colSubjects, func(s store.Store) error {
		return s.Read(colSubjects, &subjects)
	})
	if err != nil {
		log.Error("failed to read subjects: %v", err)
		return nil, err
	}
	log.Debug("listed %d subjects", len(subjects))
	return subjects, nil
}

func (r *subjectRepository) Insert(ctx context.Context, subject models.Subject) error {
	log := logger.FromContext(ctx).WithPrefix("subject_repo")
	log.Debug("inserting subject: id=%s name=%s", subject.ID, subject.Name)

	return r.queue.Do(colSubjects, func(s store.Store) error {
		var subjects []models.Subject
		if err := s.Read(colSubjects, &subjects); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			subjects = []models.Subject{}
		}
		subjects = append(subjects, subject)
		return s.Write(colSubjects, subjects)
	})
}
