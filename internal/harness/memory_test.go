package harness

import (
	"context"
	"testing"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	p := docstore.Doc("uppercase", "foo")

	require.NoError(t, m.Set(ctx, p, map[string]any{"text": "HELLO"}))

	snap, err := m.Get(ctx, p)
	require.NoError(t, err)
	assert.True(t, snap.Exists())
	if diff := cmp.Diff(map[string]any{"text": "HELLO"}, snap.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_MissingDocument(t *testing.T) {
	snap, err := NewMemoryStore().Get(context.Background(), docstore.Doc("users", "nobody"))
	require.NoError(t, err)
	assert.False(t, snap.Exists())
	assert.Equal(t, "nobody", snap.ID())
}

func TestMemoryStore_OverwriteKeepsCreateTime(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	m.now = func() time.Time { return first }

	p := docstore.Doc("uppercase", "foo")
	require.NoError(t, m.Set(ctx, p, map[string]any{"text": "A", "extra": 1}))
	m.now = func() time.Time { return second }
	require.NoError(t, m.Set(ctx, p, map[string]any{"text": "B"}))

	snap, err := m.Get(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, first, snap.CreateTime)
	assert.Equal(t, second, snap.UpdateTime)
	assert.Equal(t, map[string]any{"text": "B"}, snap.Data())
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	p := docstore.Doc("users", "u1")
	require.NoError(t, m.Set(ctx, p, map[string]any{"uid": "u1"}))

	require.NoError(t, m.Delete(ctx, p))
	require.NoError(t, m.Delete(ctx, p))
	assert.Equal(t, 0, m.Len())
}
