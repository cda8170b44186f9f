package harness

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
)

var _ docstore.Documents = (*MemoryStore)(nil)

// MemoryStore is an in-process document store for unit tests
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[docstore.Path]docstore.Snapshot
	now  func() time.Time
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[docstore.Path]docstore.Snapshot),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Set replaces the document at p
func (m *MemoryStore) Set(ctx context.Context, p docstore.Path, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	fields := maps.Clone(data)
	if fields == nil {
		fields = map[string]any{}
	}
	snap := docstore.NewSnapshot(p, fields)
	snap.CreateTime = now
	if prev, ok := m.docs[p]; ok {
		snap.CreateTime = prev.CreateTime
	}
	snap.UpdateTime = now
	m.docs[p] = snap
	return nil
}

// Get reads the document at p. A missing document is not an error.
func (m *MemoryStore) Get(ctx context.Context, p docstore.Path) (docstore.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.docs[p]
	if !ok {
		return docstore.NewSnapshot(p, nil), nil
	}
	return snap, nil
}

// Delete removes the document at p if present
func (m *MemoryStore) Delete(ctx context.Context, p docstore.Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, p)
	return nil
}

// Len returns the number of stored documents
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
