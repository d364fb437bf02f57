package state

import (
	"context"

	"github.com/mkessler/stemtutor/internal/client/cache"
	"github.com/mkessler/stemtutor/internal/logger"
)

// maxRecentTopics caps the sidebar history.
const maxRecentTopics = 10

// RecentTopics tracks the sidebar's most-recently-studied topics in the
// client cache.
type RecentTopics struct {
	cache  *cache.Cache
	log    *logger.Logger
	topics []string
}

// NewRecentTopics creates the topic tracker over the given cache.
func NewRecentTopics(c *cache.Cache) *RecentTopics {
	return &RecentTopics{
		cache: c,
		log:   logger.Default().WithPrefix("topics"),
	}
}

// Load reads the cached topic list; a miss leaves the list empty.
func (r *RecentTopics) Load(ctx context.Context) error {
	var cached []string
	ok, err := r.cache.Get(ctx, cache.KeyRecentTopics, &cached)
	if err != nil {
		r.log.Warn("cache read failed, starting empty: %v", err)
		r.topics = []string{}
		return nil
	}
	if !ok {
		r.topics = []string{}
		return nil
	}
	r.topics = cached
	return nil
}

// Topics returns the list, most recent first.
func (r *RecentTopics) Topics() []string {
	return r.topics
}

// Touch moves a topic to the front, deduplicating and capping the list,
// then persists it.
func (r *RecentTopics) Touch(ctx context.Context, topic string) error {
	if topic == "" {
		return nil
	}
	next := make([]string, 0, len(r.topics)+1)
	next = append(next, topic)
	for _, t := range r.topics {
		if t != topic {
			next = append(next, t)
		}
	}
	if len(next) > maxRecentTopics {
		next = next[:maxRecentTopics]
	}
	r.topics = next
	return r.cache.Put(ctx, cache.KeyRecentTopics, r.topics)
}
