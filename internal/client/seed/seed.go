// Package seed bundles the sample datasets used to populate an empty client
// cache on first run.
package seed

import (
	"embed"
	"encoding/json"
	"time"

	"github.com/mkessler/stemtutor/internal/models"
)

//go:embed sample_courses.json skill_nodes.json
var files embed.FS

// rawCourse mirrors the bundled dataset, whose date fields are plain
// strings and not always full timestamps.
type rawCourse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Subject      string                `json:"subject"`
	Difficulty   string                `json:"difficulty"`
	Modules      []models.CourseModule `json:"modules"`
	Tags         []string              `json:"tags"`
	Created      string                `json:"created"`
	LastAccessed string                `json:"lastAccessed"`
	Progress     int                   `json:"progress"`
	IsShared     bool                  `json:"isShared"`
	Author       string                `json:"author"`
	TotalTime    int                   `json:"totalTime"`
}

// parseDate normalizes an embedded date string into a time value. Unparsable
// strings become the zero time rather than an error: seed data must never
// keep a view from rendering.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// Courses returns the bundled sample courses with dates normalized.
func Courses() ([]models.Course, error) {
	data, err := files.ReadFile("sample_courses.json")
	if err != nil {
		return nil, err
	}

	var raw []rawCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(raw))
	for _, r := range raw {
		courses = append(courses, models.Course{
			ID:           r.ID,
			Title:        r.Title,
			Description:  r.Description,
			Subject:      r.Subject,
			Difficulty:   r.Difficulty,
			Modules:      r.Modules,
			Tags:         r.Tags,
			Created:      parseDate(r.Created),
			LastAccessed: parseDate(r.LastAccessed),
			Progress:     r.Progress,
			IsShared:     r.IsShared,
			Author:       r.Author,
			TotalTime:    r.TotalTime,
		})
	}
	return courses, nil
}

// SkillNodes returns the bundled sample skill tree.
func SkillNodes() ([]models.SkillNode, error) {
	data, err := files.ReadFile("skill_nodes.json")
	if err != nil {
		return nil, err
	}

	var nodes []models.SkillNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
