// Package jsonfile implements the repositories over whole-document JSON
// collections. Every mutation reads the entire collection, mutates it in
// memory and writes the entire collection back; the commit queue serializes
// those cycles per collection so concurrent requests cannot lose updates.
package jsonfile

import (
	"context"
	"errors"
	"time"

	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
	"github.com/mkessler/stemtutor/internal/repository"
	"github.com/mkessler/stemtutor/internal/store"
)

const colFlashcards = "flashcards"

type flashcardRepository struct {
	queue *store.CommitQueue
}

// NewFlashcardRepository creates a FlashcardRepository over the commit queue.
func NewFlashcardRepository(queue *store.CommitQueue) repository.FlashcardRepository {
	return &flashcardRepository{queue: queue}
}

// readAll loads the collection, treating a missing document as empty.
// Used by mutations only: reads surface the missing document to the caller.
func readAll(s store.Store) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := s.Read(colFlashcards, &cards); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.Flashcard{}, nil
		}
		return nil, err
	}
	return cards, nil
}

func (r *flashcardRepository) Ensure(ctx context.Context) error {
	return r.queue.Do(colFlashcards, func(s store.Store) error {
		var cards []models.Flashcard
		if err := s.Read(colFlashcards, &cards); err == nil {
			return nil
		}
		return s.Write(colFlashcards, []models.Flashcard{})
	})
}

func (r *flashcardRepository) List(ctx context.Context) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	var cards []models.Flashcard
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		return s.Read(colFlashcards, &cards)
	})
	if err != nil {
		log.Error("failed to read flashcards: %v", err)
		return nil, err
	}
	log.Debug("listed %d flashcards", len(cards))
	return cards, nil
}

func (r *flashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	var found *models.Flashcard
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		for i := range cards {
			if cards[i].ID == id {
				found = &cards[i]
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *flashcardRepository) Insert(ctx context.Context, card models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: id=%s subject=%s", card.ID, card.Subject)

	return r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		cards = append(cards, card)
		return s.Write(colFlashcards, cards)
	})
}

func (r *flashcardRepository) Apply(ctx context.Context, id string, patch models.FlashcardPatch) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var updated *models.Flashcard
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		for i := range cards {
			if cards[i].ID != id {
				continue
			}
			// Omitted fields keep their stored value.
			if patch.Question != nil {
				cards[i].Question = *patch.Question
			}
			if patch.Answer != nil {
				cards[i].Answer = *patch.Answer
			}
			if patch.Subject != nil {
				cards[i].Subject = *patch.Subject
			}
			if patch.Difficulty != nil {
				cards[i].Difficulty = *patch.Difficulty
			}
			if patch.Tags != nil {
				cards[i].Tags = *patch.Tags
			}
			now := time.Now().UTC()
			cards[i].Updated = &now

			if err := s.Write(colFlashcards, cards); err != nil {
				return err
			}
			updated = &cards[i]
			return nil
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update flashcard %s: %v", id, err)
		return nil, err
	}
	return updated, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	deleted := false
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		kept := cards[:0]
		for _, c := range cards {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(cards) {
			// Nothing matched: leave the document untouched.
			return nil
		}
		deleted = true
		return s.Write(colFlashcards, kept)
	})
	if err != nil {
		log.Error("failed to delete flashcard %s: %v", id, err)
		return false, err
	}
	log.Debug("delete flashcard %s: found=%t", id, deleted)
	return deleted, nil
}

func (r *flashcardRepository) RecordReview(ctx context.Context, id string, correct bool) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var reviewed *models.Flashcard
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		for i := range cards {
			if cards[i].ID != id {
				continue
			}
			// Counters only ever increase.
			cards[i].TimesReviewed++
			if correct {
				cards[i].CorrectCount++
			}
			now := time.Now().UTC()
			cards[i].LastReviewed = &now

			if err := s.Write(colFlashcards, cards); err != nil {
				return err
			}
			reviewed = &cards[i]
			return nil
		}
		return nil
	})
	if err != nil {
		log.Error("failed to record review for %s: %v", id, err)
		return nil, err
	}
	return reviewed, nil
}

func (r *flashcardRepository) CountBySubject(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	err := r.queue.Do(colFlashcards, func(s store.Store) error {
		cards, err := readAll(s)
		if err != nil {
			return err
		}
		for _, c := range cards {
			counts[c.Subject]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
