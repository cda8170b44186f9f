//go:build integration

package functions_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/config"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEmulator connects to DYNAMODB_ENDPOINT when set, otherwise starts
// DynamoDB Local in a container.
func setupEmulator(t *testing.T) *harness.Emulator {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.FromLookup(func(key string) (string, bool) {
		if key == config.EnvProjectID && os.Getenv(key) == "" {
			return "demo-test", true
		}
		return os.LookupEnv(key)
	})
	require.NoError(t, err)

	var emu *harness.Emulator
	if cfg.UsesEmulator() {
		emu, err = harness.ConnectEmulator(ctx, cfg)
	} else {
		emu, err = harness.StartEmulator(ctx, cfg)
	}
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, emu.Terminate(context.Background()))
	})
	return emu
}

func TestIntegration_UppercaseOnCreate(t *testing.T) {
	emu := setupEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	h := harness.New(emu.Store())
	defer func() {
		require.NoError(t, h.Cleanup(context.Background()))
	}()

	id := harness.UniqueID("foo")
	wrapped := harness.WrapDocumentTrigger(lowercase, h.Functions().UppercaseOnCreate)
	snap := harness.MakeDocumentSnapshot(map[string]any{"text": "hello world"}, "/lowercase/"+id)

	require.NoError(t, wrapped(ctx, snap, harness.Param("id", id)))
	require.NoError(t, wrapped(ctx, snap, harness.Param("id", id)))

	got, err := h.Store().Get(ctx, docstore.Doc(functions.UppercaseCollection, id))
	require.NoError(t, err)
	require.True(t, got.Exists())
	assert.Equal(t, map[string]any{"text": "HELLO WORLD"}, got.Data())
	assert.False(t, got.CreateTime.IsZero())
}

func TestIntegration_SaveUserOnCreate(t *testing.T) {
	emu := setupEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	h := harness.New(emu.Store())
	defer func() {
		require.NoError(t, h.Cleanup(context.Background()))
	}()

	uid := harness.UniqueID("user")
	user := harness.MakeUserRecord(harness.UserRecordFields{
		UID:          uid,
		Email:        uid + "@example.com",
		PasswordHash: "hash",
		CustomClaims: map[string]any{"admin": true},
	})
	require.NoError(t, harness.WrapAuthTrigger(h.Functions().SaveUserOnCreate)(ctx, user, harness.ContextOptions{}))

	got, err := h.Store().Get(ctx, docstore.Doc(functions.UsersCollection, uid))
	require.NoError(t, err)
	require.True(t, got.Exists())

	data := got.Data()
	assert.Equal(t, uid, data["uid"])
	assert.Equal(t, uid+"@example.com", data["email"])
	assert.NotContains(t, data, "passwordHash")
	assert.NotContains(t, data, "customClaims")
}

func TestIntegration_CleanupRemovesDocuments(t *testing.T) {
	emu := setupEmulator(t)
	ctx := context.Background()

	h := harness.New(emu.Store())
	p := docstore.Doc("lowercase", harness.UniqueID("tmp"))
	require.NoError(t, h.Store().Set(ctx, p, map[string]any{"text": "x"}))
	require.NoError(t, h.Cleanup(ctx))

	got, err := emu.Store().Get(ctx, p)
	require.NoError(t, err)
	assert.False(t, got.Exists())
}
