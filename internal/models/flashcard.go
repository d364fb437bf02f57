package models

import "time"

// Flashcard difficulty buckets.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the known difficulty buckets.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Flashcard is one question/answer record in the flashcards collection.
// Field names match the wire format consumed by the web client.
type Flashcard struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Answer        string     `json:"answer"`
	Subject       string     `json:"subject"`
	Difficulty    string     `json:"difficulty"`
	Tags          []string   `json:"tags"`
	Created       time.Time  `json:"created"`
	Updated       *time.Time `json:"updated,omitempty"`
	TimesReviewed int        `json:"timesReviewed"`
	CorrectCount  int        `json:"correctCount"`
	LastReviewed  *time.Time `json:"lastReviewed"`
}

// NewFlashcard carries the caller-supplied fields of a flashcard create.
type NewFlashcard struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// FlashcardPatch is a partial flashcard update. Nil fields were omitted
// from the request and keep their stored value.
type FlashcardPatch struct {
	Question   *string   `json:"question,omitempty"`
	Answer     *string   `json:"answer,omitempty"`
	Subject    *string   `json:"subject,omitempty"`
	Difficulty *string   `json:"difficulty,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}
