// Package repo contains all persistence logic for the PackVision API.
// Every piece of user state is one JSON document stored under a fixed key,
// so the repo layer is a key-value store with three interchangeable
// backends: in-process memory, Postgres and Redis.
// No business logic lives here, only storage and error mapping.
package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/packvision/internal/domain"
)

// KVRepo defines the persistence operations for JSON documents.
// The store layer depends on this interface, not on a concrete backend,
// which allows the store to be unit-tested against the memory backend.
type KVRepo interface {
	// Get returns the raw document stored under key.
	// Returns domain.ErrNotFound if nothing is stored.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous document.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memoryKV keeps documents in a map. State is lost on restart.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty in-process KVRepo.
func NewMemoryKV() KVRepo {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("repo.memoryKV.Get %q: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
