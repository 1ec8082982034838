// Package store provides the small string key/value stores that back the
// persisted tab cache. Stores never return errors to callers; a failed read is
// a miss and a failed write is logged and dropped.
package store

import "sync"

// Store is a session-scoped string store.
type Store interface {
	Read(key string) (string, bool)
	Write(key, value string)
	Remove(key string)
}

// Memory is an in-process Store. It outlives individual views, so a view that is
// torn down and rebuilt for the same match sees what the previous one wrote.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Read(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Write(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
