package store

import "errors"

// ErrNotFound is returned when a collection cannot be read. A missing file,
// an unreadable file and a corrupt document are deliberately collapsed into
// one case: callers fall back to an empty collection and cannot distinguish
// the causes.
var ErrNotFound = errors.New("store: collection not found")

// ErrQueueClosed is returned for commits submitted after the commit queue
// shut down.
var ErrQueueClosed = errors.New("store: commit queue closed")

// Store persists one JSON document per named collection. The whole document
// is the unit of atomicity: there are no field-level writes, so every
// mutation reads the full collection and writes the full collection back.
type Store interface {
	// Read unmarshals the collection's document into v.
	Read(name string, v any) error
	// Write marshals v and overwrites the collection's document.
	Write(name string, v any) error
	// List returns the names of all stored collections.
	List() ([]string, error)
}
