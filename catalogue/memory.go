package catalogue

import (
	"context"
	"sync"
)

// MemoryStore in memory Store, for embedding the bridge in a process that
// already holds the catalogue
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int]*Entry
}

// NewMemoryStore returns a store holding the entries
func NewMemoryStore(entries ...*Entry) *MemoryStore {
	ms := &MemoryStore{entries: map[int]*Entry{}}
	for _, ce := range entries {
		ms.Put(ce)
	}

	return ms
}

// Put adds or replaces the entry
func (ms *MemoryStore) Put(ce *Entry) {
	if ce == nil {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	cp := *ce
	ms.entries[ce.ID] = &cp
}

// GetByID returns the entry with the id
func (ms *MemoryStore) GetByID(ctx context.Context, id int) (*Entry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	ce, ok := ms.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *ce

	return &cp, nil
}

// GetByTaskID returns the task entry of the platform task
func (ms *MemoryStore) GetByTaskID(ctx context.Context, taskID int) (*Entry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, ce := range ms.entries {
		if !ce.IsFolder() && ce.TaskID == taskID {
			cp := *ce
			return &cp, nil
		}
	}

	return nil, nil
}
