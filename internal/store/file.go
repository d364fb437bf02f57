package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkessler/stemtutor/internal/logger"
)

// FileStore keeps one pretty-printed JSON file per collection under a
// single data directory.
type FileStore struct {
	dir string
	log *logger.Logger
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir: dir,
		log: logger.Default().WithPrefix("file_store"),
	}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read parses the collection file into v. Any failure, missing file or
// corrupt content alike, is reported as ErrNotFound.
func (s *FileStore) Read(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		s.log.Debug("read %s failed: %v", name, err)
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("collection %s is corrupt: %v", name, err)
		return ErrNotFound
	}
	return nil
}

// Write serializes v with stable two-space indentation and overwrites the
// collection file. Formatting is deterministic to keep diffs reviewable.
func (s *FileStore) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		s.log.Error("write %s failed: %v", name, err)
		return err
	}
	return nil
}

// List returns the collection names present in the data directory.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}
