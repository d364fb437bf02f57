package state_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkessler/stemtutor/internal/client/cache"
	"github.com/mkessler/stemtutor/internal/client/state"
	"github.com/mkessler/stemtutor/internal/models"
)

func openCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func loadedLibrary(t *testing.T, c *cache.Cache) *state.CourseLibrary {
	t.Helper()
	lib := state.NewCourseLibrary(c)
	require.NoError(t, lib.Load(context.Background()))
	return lib
}

func TestLoadSeedsEmptyCache(t *testing.T) {
	c := openCache(t)
	lib := loadedLibrary(t, c)

	courses := lib.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "Algebra Foundations", courses[0].Title)
	assert.Equal(t, "Newtonian Mechanics", courses[1].Title)
}

func TestLoadPrefersCachedOverSeed(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, cache.KeyCourses, []models.Course{{ID: "mine", Title: "My Course"}}))

	lib := loadedLibrary(t, c)
	require.Len(t, lib.Courses(), 1)
	assert.Equal(t, "mine", lib.Courses()[0].ID)
}

func TestCreatePersistsAcrossInstances(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	created, err := lib.Create(ctx, models.Course{Title: "Organic Chemistry", Subject: "Chemistry"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Created.IsZero())
	assert.NotNil(t, created.Modules)
	assert.NotNil(t, created.Tags)

	again := loadedLibrary(t, c)
	require.Len(t, again.Courses(), 3)
	assert.NotNil(t, again.Get(created.ID))
}

func TestDeleteRemovesCourseAndModules(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	require.NoError(t, lib.Delete(ctx, "course-algebra-foundations"))
	assert.Nil(t, lib.Get("course-algebra-foundations"))

	again := loadedLibrary(t, c)
	require.Len(t, again.Courses(), 1)
	assert.Equal(t, "course-newtonian-mechanics", again.Courses()[0].ID)
}

func TestDeleteUnknownCourse(t *testing.T) {
	c := openCache(t)
	lib := loadedLibrary(t, c)

	err := lib.Delete(context.Background(), "nope")
	assert.Error(t, err)
	assert.Len(t, lib.Courses(), 2)
}

func TestDeleteSelectedCourseResetsView(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	require.NoError(t, lib.Select(ctx, "course-algebra-foundations"))
	require.NoError(t, lib.Delete(ctx, "course-algebra-foundations"))

	assert.Equal(t, state.ViewList, lib.View())
	assert.Nil(t, lib.Selected())
}

func TestToggleShared(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	shared, err := lib.ToggleShared(ctx, "course-algebra-foundations")
	require.NoError(t, err)
	assert.True(t, shared)

	shared, err = lib.ToggleShared(ctx, "course-algebra-foundations")
	require.NoError(t, err)
	assert.False(t, shared)
}

func TestSetModuleCompletedRederivesProgress(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	require.NoError(t, lib.SetModuleCompleted(ctx, "course-algebra-foundations", "alg-1", true))
	require.NoError(t, lib.SetModuleCompleted(ctx, "course-algebra-foundations", "alg-2", true))

	course := lib.Get("course-algebra-foundations")
	require.NotNil(t, course)
	assert.Equal(t, 50, course.Progress, "2 of 4 modules done")
	assert.Equal(t, 2, course.CompletedModules())

	require.NoError(t, lib.SetModuleCompleted(ctx, "course-algebra-foundations", "alg-1", false))
	assert.Equal(t, 25, lib.Get("course-algebra-foundations").Progress)
}

func TestViewStateMachine(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	assert.Equal(t, state.ViewList, lib.View())
	assert.Error(t, lib.OpenModuleList(), "module list is unreachable from the list view")

	require.NoError(t, lib.Select(ctx, "course-algebra-foundations"))
	assert.Equal(t, state.ViewSelected, lib.View())
	assert.Error(t, lib.Select(ctx, "course-newtonian-mechanics"), "selecting requires the list view")

	require.NoError(t, lib.OpenModuleList())
	assert.Equal(t, state.ViewModuleList, lib.View())

	require.NoError(t, lib.OpenModule("alg-3"))
	assert.Equal(t, state.ViewModuleContent, lib.View())
	require.NotNil(t, lib.ActiveModule())
	assert.Equal(t, "Equation Flashcards", lib.ActiveModule().Title)

	lib.Back()
	assert.Equal(t, state.ViewList, lib.View())
	assert.Nil(t, lib.Selected())
	assert.Nil(t, lib.ActiveModule())
}

func TestOpenModuleDirectlyFromSelected(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	require.NoError(t, lib.Select(ctx, "course-newtonian-mechanics"))
	require.NoError(t, lib.OpenModule("mech-2"))
	assert.Equal(t, state.ViewModuleContent, lib.View())
}

func TestOpenUnknownModule(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	require.NoError(t, lib.Select(ctx, "course-algebra-foundations"))
	assert.Error(t, lib.OpenModule("mech-1"), "modules of other courses are not reachable")
	assert.Equal(t, state.ViewSelected, lib.View())
}

func TestReloadSamplesDiscardsEdits(t *testing.T) {
	c := openCache(t)
	ctx := context.Background()
	lib := loadedLibrary(t, c)

	_, err := lib.Create(ctx, models.Course{Title: "Scratch"})
	require.NoError(t, err)
	require.Len(t, lib.Courses(), 3)

	require.NoError(t, lib.ReloadSamples(ctx))
	assert.Len(t, lib.Courses(), 2)
	assert.Equal(t, state.ViewList, lib.View())
}
