package models

import "time"

// Defaults applied when a subject is created without icon or color.
const (
	DefaultSubjectIcon  = "BookOpen"
	DefaultSubjectColor = "bg-blue-500"
)

// Subject groups flashcards under a named topic. FlashcardCount is derived
// from the flashcards collection on read; the stored value is ignored.
type Subject struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon"`
	Color          string    `json:"color"`
	Created        time.Time `json:"created"`
	FlashcardCount int       `json:"flashcardCount"`
}

// NewSubject carries the caller-supplied fields of a subject create.
type NewSubject struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
