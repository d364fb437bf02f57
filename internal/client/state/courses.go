// Package state holds the client-side view controllers. Client-only
// collections (courses, skill nodes, recent topics) live in the local cache
// and every mutation eagerly rewrites the whole collection blob; server-backed
// collections are refetched wholesale and never trusted from the cache.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkessler/stemtutor/internal/client/cache"
	"github.com/mkessler/stemtutor/internal/client/seed"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

// CourseView names the states of the course detail view.
type CourseView int

const (
	ViewList CourseView = iota
	ViewSelected
	ViewModuleList
	ViewModuleContent
)

func (v CourseView) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewSelected:
		return "selected"
	case ViewModuleList:
		return "module-list"
	case ViewModuleContent:
		return "module-content-view"
	default:
		return "unknown"
	}
}

// CourseLibrary is the view controller for the client-only course
// collection.
type CourseLibrary struct {
	cache *cache.Cache
	log   *logger.Logger
	now   func() time.Time

	courses []models.Course

	view           CourseView
	selectedID     string
	activeModuleID string
}

// NewCourseLibrary creates a course library over the given cache.
func NewCourseLibrary(c *cache.Cache) *CourseLibrary {
	return &CourseLibrary{
		cache: c,
		log:   logger.Default().WithPrefix("courses"),
		now:   func() time.Time { return time.Now().UTC() },
		view:  ViewList,
	}
}

// Load populates the library from the cache, falling back to the bundled
// sample courses when nothing is cached. A failed seed leaves the library
// empty; it never fails the caller.
func (l *CourseLibrary) Load(ctx context.Context) error {
	var cached []models.Course
	ok, err := l.cache.Get(ctx, cache.KeyCourses, &cached)
	if err != nil {
		l.log.Warn("cache read failed, starting empty: %v", err)
		l.courses = []models.Course{}
		return nil
	}
	if ok {
		l.courses = cached
		l.log.Debug("loaded %d courses from cache", len(cached))
		return nil
	}

	seeded, err := seed.Courses()
	if err != nil {
		l.log.Warn("sample courses unavailable: %v", err)
		l.courses = []models.Course{}
		return nil
	}
	l.courses = seeded
	l.log.Info("seeded %d sample courses", len(seeded))
	return l.persist(ctx)
}

// persist rewrites the whole collection blob into the cache.
func (l *CourseLibrary) persist(ctx context.Context) error {
	return l.cache.Put(ctx, cache.KeyCourses, l.courses)
}

// Courses returns the current working copy of the collection.
func (l *CourseLibrary) Courses() []models.Course {
	return l.courses
}

// Get returns the course with the given id, or nil.
func (l *CourseLibrary) Get(id string) *models.Course {
	for i := range l.courses {
		if l.courses[i].ID == id {
			return &l.courses[i]
		}
	}
	return nil
}

// Create adds a course, assigning id and timestamps when absent.
func (l *CourseLibrary) Create(ctx context.Context, c models.Course) (*models.Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Created.IsZero() {
		c.Created = l.now()
	}
	c.LastAccessed = l.now()
	if c.Modules == nil {
		c.Modules = []models.CourseModule{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}

	l.courses = append(l.courses, c)
	if err := l.persist(ctx); err != nil {
		return nil, err
	}
	l.log.Info("course created: id=%s title=%s", c.ID, c.Title)
	return &c, nil
}

// Update replaces the stored course with the same id.
func (l *CourseLibrary) Update(ctx context.Context, c models.Course) error {
	for i := range l.courses {
		if l.courses[i].ID == c.ID {
			l.courses[i] = c
			return l.persist(ctx)
		}
	}
	return fmt.Errorf("course not found: %s", c.ID)
}

// Delete removes a course and, with it, all of its modules. A deleted
// course that was selected resets the view to the list.
func (l *CourseLibrary) Delete(ctx context.Context, id string) error {
	kept := l.courses[:0]
	found := false
	for _, c := range l.courses {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("course not found: %s", id)
	}
	l.courses = kept
	if l.selectedID == id {
		l.Back()
	}
	return l.persist(ctx)
}

// ToggleShared flips a course's shared flag and returns the new value.
func (l *CourseLibrary) ToggleShared(ctx context.Context, id string) (bool, error) {
	c := l.Get(id)
	if c == nil {
		return false, fmt.Errorf("course not found: %s", id)
	}
	c.IsShared = !c.IsShared
	return c.IsShared, l.persist(ctx)
}

// SetModuleCompleted marks a module done or not done and rederives the
// course progress from its modules.
func (l *CourseLibrary) SetModuleCompleted(ctx context.Context, courseID, moduleID string, completed bool) error {
	c := l.Get(courseID)
	if c == nil {
		return fmt.Errorf("course not found: %s", courseID)
	}
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			c.Modules[i].Completed = completed
			c.Progress = c.CompletionPercent()
			c.LastAccessed = l.now()
			return l.persist(ctx)
		}
	}
	return fmt.Errorf("module not found: %s", moduleID)
}

// ReloadSamples clears the cached collection and reloads the bundled seed.
// This is the only action that discards local edits.
func (l *CourseLibrary) ReloadSamples(ctx context.Context) error {
	if err := l.cache.Delete(ctx, cache.KeyCourses); err != nil {
		return err
	}
	l.Back()
	return l.Load(ctx)
}

// View state machine: list -> selected -> (module-list | module-content-view) -> list.
// Transitions are navigational only and never trigger a network call.

// View returns the current view state.
func (l *CourseLibrary) View() CourseView {
	return l.view
}

// Selected returns the course the view is focused on, or nil in list view.
func (l *CourseLibrary) Selected() *models.Course {
	if l.selectedID == "" {
		return nil
	}
	return l.Get(l.selectedID)
}

// ActiveModule returns the module open in the content view, or nil.
func (l *CourseLibrary) ActiveModule() *models.CourseModule {
	c := l.Selected()
	if c == nil || l.activeModuleID == "" {
		return nil
	}
	for i := range c.Modules {
		if c.Modules[i].ID == l.activeModuleID {
			return &c.Modules[i]
		}
	}
	return nil
}

// Select focuses a course, moving from the list to the detail view.
func (l *CourseLibrary) Select(ctx context.Context, id string) error {
	if l.view != ViewList {
		return fmt.Errorf("cannot select from %s view", l.view)
	}
	c := l.Get(id)
	if c == nil {
		return fmt.Errorf("course not found: %s", id)
	}
	c.LastAccessed = l.now()
	l.selectedID = id
	l.view = ViewSelected
	return l.persist(ctx)
}

// OpenModuleList shows the selected course's module list.
func (l *CourseLibrary) OpenModuleList() error {
	if l.view != ViewSelected {
		return fmt.Errorf("cannot open module list from %s view", l.view)
	}
	l.view = ViewModuleList
	return nil
}

// OpenModule opens one module's content view.
func (l *CourseLibrary) OpenModule(moduleID string) error {
	if l.view != ViewSelected && l.view != ViewModuleList {
		return fmt.Errorf("cannot open module from %s view", l.view)
	}
	c := l.Selected()
	if c == nil {
		return fmt.Errorf("no course selected")
	}
	for _, m := range c.Modules {
		if m.ID == moduleID {
			l.activeModuleID = moduleID
			l.view = ViewModuleContent
			return nil
		}
	}
	return fmt.Errorf("module not found: %s", moduleID)
}

// Back returns to the course list and clears the selection.
func (l *CourseLibrary) Back() {
	l.view = ViewList
	l.selectedID = ""
	l.activeModuleID = ""
}
