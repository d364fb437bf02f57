package models

import "time"

// Progress is the single per-installation learner record. It is always an
// object, never an array, and updates merge onto the stored record or onto
// DefaultProgress when nothing is stored yet.
type Progress struct {
	TotalXP         int        `json:"totalXP"`
	Level           int        `json:"level"`
	Streak          int        `json:"streak"`
	LastActivity    *time.Time `json:"lastActivity"`
	CompletedSkills []string   `json:"completedSkills"`
	Achievements    []string   `json:"achievements"`
}

// DefaultProgress returns the progress record a fresh installation starts with.
func DefaultProgress() Progress {
	return Progress{
		TotalXP:         0,
		Level:           1,
		Streak:          0,
		LastActivity:    nil,
		CompletedSkills: []string{},
		Achievements:    []string{},
	}
}

// ProgressPatch is a partial progress update. Nil fields were omitted from
// the request and keep their stored value.
type ProgressPatch struct {
	TotalXP         *int       `json:"totalXP,omitempty"`
	Level           *int       `json:"level,omitempty"`
	Streak          *int       `json:"streak,omitempty"`
	LastActivity    *time.Time `json:"lastActivity,omitempty"`
	CompletedSkills *[]string  `json:"completedSkills,omitempty"`
	Achievements    *[]string  `json:"achievements,omitempty"`
}

// Apply overlays the non-nil fields of the patch onto p.
func (p Progress) Apply(patch ProgressPatch) Progress {
	if patch.TotalXP != nil {
		p.TotalXP = *patch.TotalXP
	}
	if patch.Level != nil {
		p.Level = *patch.Level
	}
	if patch.Streak != nil {
		p.Streak = *patch.Streak
	}
	if patch.LastActivity != nil {
		p.LastActivity = patch.LastActivity
	}
	if patch.CompletedSkills != nil {
		p.CompletedSkills = *patch.CompletedSkills
	}
	if patch.Achievements != nil {
		p.Achievements = *patch.Achievements
	}
	return p
}
