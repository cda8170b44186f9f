package functions

import (
	"testing"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	r := Definitions()

	assert.Equal(t, []string{NameFirestoreUppercase, NameSimpleCallable, NameSimpleHTTP, NameUserSaver}, r.Names())

	def, err := r.Get(NameFirestoreUppercase)
	require.NoError(t, err)
	assert.Equal(t, KindDocumentCreate, def.Kind)
	assert.Equal(t, LowercasePattern, def.Resource)

	_, err = trigger.ParsePattern(def.Resource)
	assert.NoError(t, err)
}

func TestRegistry_Get_Unknown(t *testing.T) {
	_, err := Definitions().Get("nope")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestRegistry_Add_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Definition{Name: "a", Kind: KindHTTP}))

	assert.Error(t, r.Add(Definition{Name: "a", Kind: KindCallable}))
	assert.Error(t, r.Add(Definition{Kind: KindCallable}))
}

func TestRegistry_ByKind(t *testing.T) {
	defs := Definitions().ByKind(KindCallable)

	require.Len(t, defs, 1)
	assert.Equal(t, NameSimpleCallable, defs[0].Name)
	assert.Empty(t, Definitions().ByKind(Kind("queue")))
}
