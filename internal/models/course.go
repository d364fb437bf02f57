package models

import (
	"encoding/json"
	"time"
)

// Course difficulty tiers.
const (
	CourseBeginner     = "beginner"
	CourseIntermediate = "intermediate"
	CourseAdvanced     = "advanced"
)

// Course module types.
const (
	ModuleLesson     = "lesson"
	ModuleFlashcards = "flashcards"
	ModulePractice   = "practice"
	ModuleGame       = "game"
)

// Course is a client-only aggregate: it lives in the local state cache and
// is never persisted server-side. Deleting a course discards its modules.
type Course struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Subject      string         `json:"subject"`
	Difficulty   string         `json:"difficulty"`
	Modules      []CourseModule `json:"modules"`
	Tags         []string       `json:"tags"`
	Created      time.Time      `json:"created"`
	LastAccessed time.Time      `json:"lastAccessed"`
	Progress     int            `json:"progress"`
	IsShared     bool           `json:"isShared"`
	Author       string         `json:"author"`
	TotalTime    int            `json:"totalTime"`
}

// CourseModule is one ordered step of a course. Content carries the rich
// lesson payload (objectives, sections, exercises) and is treated as opaque.
type CourseModule struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	Completed     bool            `json:"completed"`
	EstimatedTime int             `json:"estimatedTime"`
	Content       json.RawMessage `json:"content,omitempty"`
}

// CompletionPercent derives the course progress from its modules, 0-100.
func (c Course) CompletionPercent() int {
	if len(c.Modules) == 0 {
		return 0
	}
	done := 0
	for _, m := range c.Modules {
		if m.Completed {
			done++
		}
	}
	return done * 100 / len(c.Modules)
}

// CompletedModules counts the finished modules of the course.
func (c Course) CompletedModules() int {
	done := 0
	for _, m := range c.Modules {
		if m.Completed {
			done++
		}
	}
	return done
}
