package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps documents in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	return m.Apply(ctx, Batch{Puts: map[string]json.RawMessage{key: value}})
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	return m.Apply(ctx, Batch{Removes: []string{key}})
}

func (m *MemoryStore) Apply(ctx context.Context, b Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range b.Puts {
		m.docs[key] = bytes.Clone(value)
	}
	for _, key := range b.Removes {
		delete(m.docs, key)
	}
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *MemoryStore) Close() error { return nil }
