package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkessler/stemtutor/internal/store"
)

// NewMemoryQueue creates an in-memory store wrapped in a commit queue. The
// queue is drained and stopped when the test finishes.
func NewMemoryQueue(t *testing.T) (*store.CommitQueue, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	queue := store.NewCommitQueue(mem, 4)
	t.Cleanup(queue.Close)
	return queue, mem
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
