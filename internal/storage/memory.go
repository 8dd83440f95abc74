package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests and local development.
// It mirrors the write-once semantics of the S3 implementation.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailPut, when set, makes every Put return this error. Tests use it to
	// simulate an unreachable blob store.
	FailPut error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores the object bytes under key, refusing to overwrite.
func (m *MemoryStore) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; ok {
		return ErrObjectExists
	}
	m.objects[key] = data
	return nil
}

// Len reports the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Get returns the stored bytes for key, if any.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}
