package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in a map. A positive quota caps the total size in
// bytes of keys plus values, like a browser's local storage limit.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
}

func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{
		data:  make(map[string]string),
		quota: quota,
	}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBackend) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := 0
		for k, v := range m.data {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
