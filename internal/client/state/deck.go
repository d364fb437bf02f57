package state

import (
	"context"

	"github.com/mkessler/stemtutor/internal/client/apiclient"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

// FlashcardDeck is the view controller for the server-backed flashcard
// collection. Like SubjectPanel, it refetches wholesale and keeps the
// previous copy on fetch failure.
type FlashcardDeck struct {
	client *apiclient.Client
	log    *logger.Logger
	cards  []models.Flashcard
}

// NewFlashcardDeck creates the deck over the given API client.
func NewFlashcardDeck(c *apiclient.Client) *FlashcardDeck {
	return &FlashcardDeck{
		client: c,
		log:    logger.Default().WithPrefix("deck"),
	}
}

// Cards returns the last successfully fetched collection.
func (d *FlashcardDeck) Cards() []models.Flashcard {
	return d.cards
}

// Refresh refetches the collection and replaces local state.
func (d *FlashcardDeck) Refresh(ctx context.Context) {
	cards, err := d.client.Flashcards(ctx)
	if err != nil {
		d.log.Warn("failed to fetch flashcards, keeping previous state: %v", err)
		return
	}
	d.cards = cards
}

// Create posts a new flashcard and refetches on success.
func (d *FlashcardDeck) Create(ctx context.Context, input models.NewFlashcard) (*models.Flashcard, error) {
	card, err := d.client.CreateFlashcard(ctx, input)
	if err != nil {
		return nil, err
	}
	d.Refresh(ctx)
	return card, nil
}

// Review records a review result for one card and refetches.
func (d *FlashcardDeck) Review(ctx context.Context, id string, correct bool) (*models.Flashcard, error) {
	card, err := d.client.ReviewFlashcard(ctx, id, correct)
	if err != nil {
		return nil, err
	}
	d.Refresh(ctx)
	return card, nil
}

// Accuracy derives the overall review accuracy percentage for the deck,
// or 0 when nothing was reviewed yet.
func (d *FlashcardDeck) Accuracy() int {
	reviewed, correct := 0, 0
	for _, c := range d.cards {
		reviewed += c.TimesReviewed
		correct += c.CorrectCount
	}
	if reviewed == 0 {
		return 0
	}
	return correct * 100 / reviewed
}
