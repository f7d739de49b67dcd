package store

import (
	"errors"
	"sync"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

var (
	// ErrNotLoaded is returned when the dataset has not been loaded yet.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// MemoryStore is a concurrency-safe holder for the loaded base table. The
// table itself is never modified once stored.
type MemoryStore struct {
	mu    sync.RWMutex
	table *rental.Table
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put stores the base table. It is meant to be called once at startup.
func (s *MemoryStore) Put(table *rental.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table
}

// Table returns the stored base table.
func (s *MemoryStore) Table() (*rental.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.table == nil {
		return nil, ErrNotLoaded
	}
	return s.table, nil
}
