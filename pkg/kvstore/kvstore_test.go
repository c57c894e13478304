package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "kv", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "last_map_trip_u1", "trip-a"))
			v, ok, err := store.Get(ctx, "last_map_trip_u1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "trip-a", v)

			require.NoError(t, store.Set(ctx, "last_map_trip_u1", "trip-b"))
			v, _, err = store.Get(ctx, "last_map_trip_u1")
			require.NoError(t, err)
			assert.Equal(t, "trip-b", v)

			require.NoError(t, store.Delete(ctx, "last_map_trip_u1"))
			_, ok, err = store.Get(ctx, "last_map_trip_u1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "chat_history_abc", `[{"role":"user","content":"hi"}]`))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get(ctx, "chat_history_abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"role":"user","content":"hi"}]`, v)
}
