// internal/scorecache/memory.go
package scorecache

import (
	"context"
	"sync"
)

// Memory is an in-process Cache for single runs with repeated annotation
// profiles. Contents are lost when the process exits.
type Memory struct {
	mu   sync.RWMutex
	data map[string]float64
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]float64)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return 0, ErrMiss
	}
	return v, nil
}

func (m *Memory) Put(_ context.Context, key string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = score
	return nil
}

func (m *Memory) Close() error { return nil }
