package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps values in memory. Useful for tests and throwaway sessions.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte

	// Error injection for testing
	GetErr error
	SetErr error
	Writes int
}

// NewMemorySlot returns an empty slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

// Get implements Slot.
func (m *MemorySlot) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements Slot.
func (m *MemorySlot) Set(ctx context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

// Close implements Slot.
func (m *MemorySlot) Close() error {
	return nil
}
