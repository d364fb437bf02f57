package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkessler/stemtutor/internal/store"
)

// appendOne is the read-modify-write cycle every mutation performs: without
// serialization, concurrent cycles lose appends.
func appendOne(collection, item string) func(store.Store) error {
	return func(s store.Store) error {
		var items []string
		if err := s.Read(collection, &items); err != nil && err != store.ErrNotFound {
			return err
		}
		items = append(items, item)
		return s.Write(collection, items)
	}
}

func TestCommitQueue_SerializesConcurrentAppends(t *testing.T) {
	mem := store.NewMemory()
	queue := store.NewCommitQueue(mem, 4)
	defer queue.Close()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, queue.Do("flashcards", appendOne("flashcards", "card")))
		}()
	}
	wg.Wait()

	var items []string
	require.NoError(t, mem.Read("flashcards", &items))
	assert.Len(t, items, writers, "no concurrent append may be lost")
}

func TestCommitQueue_IndependentCollections(t *testing.T) {
	mem := store.NewMemory()
	queue := store.NewCommitQueue(mem, 4)
	defer queue.Close()

	require.NoError(t, queue.Do("flashcards", appendOne("flashcards", "a")))
	require.NoError(t, queue.Do("subjects", appendOne("subjects", "b")))

	var cards, subjects []string
	require.NoError(t, mem.Read("flashcards", &cards))
	require.NoError(t, mem.Read("subjects", &subjects))
	assert.Equal(t, []string{"a"}, cards)
	assert.Equal(t, []string{"b"}, subjects)
}

func TestCommitQueue_PropagatesCommitError(t *testing.T) {
	mem := store.NewMemory()
	queue := store.NewCommitQueue(mem, 4)
	defer queue.Close()

	err := queue.Do("flashcards", func(s store.Store) error {
		var items []string
		return s.Read("flashcards", &items)
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommitQueue_ClosedQueueRejectsCommits(t *testing.T) {
	queue := store.NewCommitQueue(store.NewMemory(), 4)
	require.NoError(t, queue.Do("flashcards", appendOne("flashcards", "a")))
	queue.Close()

	err := queue.Do("flashcards", appendOne("flashcards", "b"))
	assert.ErrorIs(t, err, store.ErrQueueClosed)
}
