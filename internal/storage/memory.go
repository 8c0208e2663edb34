package storage

import (
	"context"
	"sync"
)

// MemoryAdapter keeps blobs in a mutex-guarded map.  It backs tests and
// serves as the fallback target of FailoverAdapter when Redis is down.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryAdapter returns an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

func (m *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryAdapter) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryAdapter) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
