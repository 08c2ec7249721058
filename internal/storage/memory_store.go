package storage

import (
	"context"
	"sync"

	"pions/internal/domain"
)

// MemoryStateStore keeps the saved-state record in memory. It backs tests
// and runs where nothing should touch disk.
type MemoryStateStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
	Err   error // returned by SaveState when set
}

var _ domain.StateStore = (*MemoryStateStore)(nil)

// NewMemoryStateStore returns a store preloaded with data (nil means empty).
func NewMemoryStateStore(data []byte) *MemoryStateStore {
	return &MemoryStateStore{data: data}
}

func (m *MemoryStateStore) LoadState(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStateStore) SaveState(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Data returns the last saved record.
func (m *MemoryStateStore) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// SaveCount returns how many successful saves happened.
func (m *MemoryStateStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStateStore) Close() error { return nil }
