package models

// SkillNode is a client-only node of the skill tree. Level is used purely
// for layout grouping; prerequisites are declared but not enforced, so a
// node may be unlocked independent of prerequisite completion.
type SkillNode struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Subject         string   `json:"subject"`
	Level           int      `json:"level"`
	PrerequisiteIDs []string `json:"prerequisiteIds"`
	IsUnlocked      bool     `json:"isUnlocked"`
	IsCompleted     bool     `json:"isCompleted"`
	Progress        int      `json:"progress"`
	XPReward        int      `json:"xpReward"`
	Description     string   `json:"description"`
}
