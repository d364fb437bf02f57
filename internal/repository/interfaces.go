package repository

import (
	"context"

	"github.com/mkessler/stemtutor/internal/models"
)

// FlashcardRepository handles flashcard data access. Lookup methods return
// (nil, nil) when no record matches; mutations are atomic with respect to
// other mutations on the same collection.
type FlashcardRepository interface {
	// Ensure creates an empty collection when none is stored yet, so a
	// fresh installation can list before its first create.
	Ensure(ctx context.Context) error
	List(ctx context.Context) ([]models.Flashcard, error)
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	Insert(ctx context.Context, card models.Flashcard) error
	Apply(ctx context.Context, id string, patch models.FlashcardPatch) (*models.Flashcard, error)
	Delete(ctx context.Context, id string) (bool, error)
	RecordReview(ctx context.Context, id string, correct bool) (*models.Flashcard, error)
	CountBySubject(ctx context.Context) (map[string]int, error)
}

// SubjectRepository handles subject data access.
type SubjectRepository interface {
	Ensure(ctx context.Context) error
	List(ctx context.Context) ([]models.Subject, error)
	Insert(ctx context.Context, subject models.Subject) error
}

// ProgressRepository handles the singleton progress record.
type ProgressRepository interface {
	Ensure(ctx context.Context) error
	// Get returns the stored record; a store read failure propagates.
	Get(ctx context.Context) (*models.Progress, error)
	// Merge overlays the patch onto the stored record, or onto the
	// default record when nothing is stored, and persists the result.
	Merge(ctx context.Context, patch models.ProgressPatch) (*models.Progress, error)
}
