package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkessler/stemtutor/internal/client/cache"
)

func openCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutAndGet(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, cache.KeyRecentTopics, []string{"algebra", "forces"}))

	var topics []string
	ok, err := c.Get(ctx, cache.KeyRecentTopics, &topics)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"algebra", "forces"}, topics)
}

func TestGetMissingKey(t *testing.T) {
	c := openCache(t)

	var topics []string
	ok, err := c.Get(context.Background(), "nope", &topics)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, cache.KeyRecentTopics, []string{"old"}))
	require.NoError(t, c.Put(ctx, cache.KeyRecentTopics, []string{"new"}))

	var topics []string
	ok, err := c.Get(ctx, cache.KeyRecentTopics, &topics)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, topics)
}

func TestCorruptBlobIsAMiss(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	// A JSON string is valid in the table but does not decode into a slice.
	require.NoError(t, c.Put(ctx, cache.KeyCourses, "not a collection"))

	var courses []map[string]any
	ok, err := c.Get(ctx, cache.KeyCourses, &courses)
	require.NoError(t, err, "a corrupt blob must not surface as an error")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, cache.KeyCourses, []string{"x"}))
	require.NoError(t, c.Delete(ctx, cache.KeyCourses))

	var out []string
	ok, err := c.Get(ctx, cache.KeyCourses, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.Delete(ctx, cache.KeyCourses), "deleting a missing key is not an error")
}

func TestKeys(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, cache.KeySkillNodes, []string{}))
	require.NoError(t, c.Put(ctx, cache.KeyCourses, []string{}))

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{cache.KeyCourses, cache.KeySkillNodes}, keys)
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	c, err := cache.Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, cache.KeyRecentTopics, []string{"algebra"}))
	require.NoError(t, c.Close())

	c, err = cache.Open(path)
	require.NoError(t, err)
	defer c.Close()

	var topics []string
	ok, err := c.Get(ctx, cache.KeyRecentTopics, &topics)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"algebra"}, topics)
}
