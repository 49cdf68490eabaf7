package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. It backs throwaway sessions
// (local path "memory") and tests.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Init() error  { return nil }
func (m *MemoryBackend) Load() error  { return nil }
func (m *MemoryBackend) Close() error { return nil }

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Name() string          { return "memory" }
func (m *MemoryBackend) GetConfigPath() string { return "memory" }
