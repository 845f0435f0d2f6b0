package session

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore хранит сессии в памяти процесса.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data[sessionID]), nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.data[sessionID]
	if !ok {
		row = make(map[string]string, len(values))
		m.data[sessionID] = row
	}
	maps.Copy(row, values)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := m.data[sessionID]
	for _, k := range keys {
		delete(row, k)
	}
	if len(row) == 0 {
		delete(m.data, sessionID)
	}
	return nil
}
