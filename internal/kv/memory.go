package kv

import (
	"context"
	"sync"
)

type memoryBlob struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns a process-local Blob, used in tests and for throwaway
// sessions.
func NewMemory() Blob {
	return &memoryBlob{data: make(map[string][]byte)}
}

func (m *memoryBlob) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryBlob) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryBlob) Close() error { return nil }
