package store

import (
	"encoding/json"
	"sort"
	"sync"
)

// Memory is an in-process Store used by tests and by anything that wants
// the record semantics without disk I/O. ReadErr and WriteErr, when set,
// are returned by every Read/Write to simulate store failures.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	ReadErr  error
	WriteErr error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Read(name string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return m.ReadErr
	}
	data, ok := m.docs[name]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrNotFound
	}
	return nil
}

func (m *Memory) Write(name string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	m.docs[name] = data
	return nil
}

func (m *Memory) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the stored document bytes for a collection, or nil when the
// collection does not exist. Test helper.
func (m *Memory) Raw(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[name]
	if !ok {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
