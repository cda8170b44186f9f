// Package harness simulates triggers so handlers can be invoked directly,
// without the platform dispatchers. It builds fake payloads and event
// contexts, captures results, and tracks every document written so a test
// run can clean up after itself.
package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/google/uuid"
)

// ErrClosed is returned by a harness, or its store, after Cleanup
var ErrClosed = errors.New("harness is closed")

// Harness owns the document store used by a test run. Create one with New
// and release it with Cleanup once the run is finished.
type Harness struct {
	docs docstore.Documents

	mu      sync.Mutex
	written map[docstore.Path]struct{}
	closed  bool
}

// New returns a harness over docs. A nil docs uses a fresh MemoryStore.
func New(docs docstore.Documents) *Harness {
	if docs == nil {
		docs = NewMemoryStore()
	}
	return &Harness{
		docs:    docs,
		written: make(map[docstore.Path]struct{}),
	}
}

// Store returns the harness's document store. Writes through it are
// tracked and undone by Cleanup.
func (h *Harness) Store() docstore.Documents {
	return trackingStore{h: h}
}

// Functions returns a handler set writing through Store
func (h *Harness) Functions() *functions.Set {
	return functions.New(h.Store())
}

// Written returns the number of distinct documents written so far
func (h *Harness) Written() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.written)
}

// Paths returns the documents written so far, ordered by path
func (h *Harness) Paths() []docstore.Path {
	h.mu.Lock()
	defer h.mu.Unlock()
	paths := make([]docstore.Path, 0, len(h.written))
	for p := range h.written {
		paths = append(paths, p)
	}
	slices.SortFunc(paths, func(a, b docstore.Path) int {
		return strings.Compare(a.String(), b.String())
	})
	return paths
}

// Cleanup deletes every document written through the harness. The harness
// refuses further use afterwards; a second Cleanup returns ErrClosed.
func (h *Harness) Cleanup(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.closed = true
	paths := make([]docstore.Path, 0, len(h.written))
	for p := range h.written {
		paths = append(paths, p)
	}
	clear(h.written)
	h.mu.Unlock()

	var errs []error
	for _, p := range paths {
		if err := h.docs.Delete(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (h *Harness) track(p docstore.Path) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.written[p] = struct{}{}
	return nil
}

func (h *Harness) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// UniqueID returns prefix followed by a random suffix, for document IDs
// that must not collide between tests sharing a store
func UniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

type trackingStore struct {
	h *Harness
}

func (s trackingStore) Set(ctx context.Context, p docstore.Path, data map[string]any) error {
	if err := s.h.track(p); err != nil {
		return err
	}
	return s.h.docs.Set(ctx, p, data)
}

func (s trackingStore) Get(ctx context.Context, p docstore.Path) (docstore.Snapshot, error) {
	if s.h.isClosed() {
		return docstore.Snapshot{}, ErrClosed
	}
	return s.h.docs.Get(ctx, p)
}

func (s trackingStore) Delete(ctx context.Context, p docstore.Path) error {
	if s.h.isClosed() {
		return ErrClosed
	}
	return s.h.docs.Delete(ctx, p)
}
