package state

import (
	"context"
	"fmt"

	"github.com/mkessler/stemtutor/internal/client/cache"
	"github.com/mkessler/stemtutor/internal/client/seed"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

// SkillTree is the view controller for the client-only skill node
// collection. Prerequisites are declared on the nodes but not enforced:
// unlocking never checks them.
type SkillTree struct {
	cache *cache.Cache
	log   *logger.Logger
	nodes []models.SkillNode
}

// NewSkillTree creates a skill tree over the given cache.
func NewSkillTree(c *cache.Cache) *SkillTree {
	return &SkillTree{
		cache: c,
		log:   logger.Default().WithPrefix("skilltree"),
	}
}

// Load populates the tree from the cache, falling back to the bundled seed.
func (t *SkillTree) Load(ctx context.Context) error {
	var cached []models.SkillNode
	ok, err := t.cache.Get(ctx, cache.KeySkillNodes, &cached)
	if err != nil {
		t.log.Warn("cache read failed, starting empty: %v", err)
		t.nodes = []models.SkillNode{}
		return nil
	}
	if ok {
		t.nodes = cached
		return nil
	}

	seeded, err := seed.SkillNodes()
	if err != nil {
		t.log.Warn("sample skill nodes unavailable: %v", err)
		t.nodes = []models.SkillNode{}
		return nil
	}
	t.nodes = seeded
	t.log.Info("seeded %d skill nodes", len(seeded))
	return t.persist(ctx)
}

func (t *SkillTree) persist(ctx context.Context) error {
	return t.cache.Put(ctx, cache.KeySkillNodes, t.nodes)
}

// Nodes returns the current working copy of the collection.
func (t *SkillTree) Nodes() []models.SkillNode {
	return t.nodes
}

func (t *SkillTree) find(id string) *models.SkillNode {
	for i := range t.nodes {
		if t.nodes[i].ID == id {
			return &t.nodes[i]
		}
	}
	return nil
}

// Unlock marks a node unlocked regardless of prerequisite completion.
func (t *SkillTree) Unlock(ctx context.Context, id string) error {
	n := t.find(id)
	if n == nil {
		return fmt.Errorf("skill not found: %s", id)
	}
	n.IsUnlocked = true
	return t.persist(ctx)
}

// SetProgress sets a node's progress, clamped to 0-100.
func (t *SkillTree) SetProgress(ctx context.Context, id string, progress int) error {
	n := t.find(id)
	if n == nil {
		return fmt.Errorf("skill not found: %s", id)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	n.Progress = progress
	return t.persist(ctx)
}

// Complete marks a node completed and returns its XP reward.
func (t *SkillTree) Complete(ctx context.Context, id string) (int, error) {
	n := t.find(id)
	if n == nil {
		return 0, fmt.Errorf("skill not found: %s", id)
	}
	n.IsCompleted = true
	n.Progress = 100
	if err := t.persist(ctx); err != nil {
		return 0, err
	}
	t.log.Info("skill completed: id=%s xp=%d", id, n.XPReward)
	return n.XPReward, nil
}

// NodesByLevel groups nodes by their layout level.
func (t *SkillTree) NodesByLevel() map[int][]models.SkillNode {
	byLevel := make(map[int][]models.SkillNode)
	for _, n := range t.nodes {
		byLevel[n.Level] = append(byLevel[n.Level], n)
	}
	return byLevel
}

// MaxLevel returns the highest layout level present, or 0 for an empty tree.
func (t *SkillTree) MaxLevel() int {
	max := 0
	for _, n := range t.nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}

// CompletedCount counts the completed nodes.
func (t *SkillTree) CompletedCount() int {
	count := 0
	for _, n := range t.nodes {
		if n.IsCompleted {
			count++
		}
	}
	return count
}

// EarnedXP sums the XP rewards of completed nodes.
func (t *SkillTree) EarnedXP() int {
	xp := 0
	for _, n := range t.nodes {
		if n.IsCompleted {
			xp += n.XPReward
		}
	}
	return xp
}
