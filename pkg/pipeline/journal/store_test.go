package journal_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
)

// newStoreFuncs builds fresh instances of every Store implementation so
// the same behavior suite runs against each.
func newStoreFuncs(t *testing.T) map[string]func(t *testing.T) journal.Store {
	t.Helper()
	return map[string]func(t *testing.T) journal.Store{
		"memory": func(t *testing.T) journal.Store {
			return journal.NewMemoryStore()
		},
		"sqlite": func(t *testing.T) journal.Store {
			store, err := journal.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
			require.NoError(t, err)
			return store
		},
	}
}

// TestStore_SaveLoad verifies basic round trips for every implementation.
func TestStore_SaveLoad(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "stage-a", []byte("hello")))

			data, err := store.Load("run-1", "stage-a")
			require.NoError(t, err)
			assert.Equal(t, []byte("hello"), data)
		})
	}
}

// TestStore_SaveOverwrites verifies a second save for the same stage
// replaces the data.
func TestStore_SaveOverwrites(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "stage-a", []byte("first")))
			require.NoError(t, store.Save("run-1", "stage-a", []byte("second")))

			data, err := store.Load("run-1", "stage-a")
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), data)
		})
	}
}

// TestStore_LoadMissing verifies ErrNotFound for absent entries.
func TestStore_LoadMissing(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			_, err := store.Load("no-such-run", "stage-a")
			assert.ErrorIs(t, err, journal.ErrNotFound)

			require.NoError(t, store.Save("run-1", "stage-a", []byte("x")))
			_, err = store.Load("run-1", "no-such-stage")
			assert.ErrorIs(t, err, journal.ErrNotFound)
		})
	}
}

// TestStore_ListOrderedBySequence verifies listings come back in save
// order.
func TestStore_ListOrderedBySequence(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "stage-c", []byte("1")))
			require.NoError(t, store.Save("run-1", "stage-a", []byte("22")))
			require.NoError(t, store.Save("run-1", "stage-b", []byte("333")))
			require.NoError(t, store.Save("run-2", "stage-x", []byte("other run")))

			infos, err := store.List("run-1")
			require.NoError(t, err)
			require.Len(t, infos, 3)

			assert.Equal(t, "stage-c", infos[0].StageID)
			assert.Equal(t, "stage-a", infos[1].StageID)
			assert.Equal(t, "stage-b", infos[2].StageID)
			assert.Equal(t, int64(1), infos[0].Size)
			assert.Equal(t, int64(2), infos[1].Size)
			assert.Equal(t, int64(3), infos[2].Size)
			for i, info := range infos {
				assert.Equal(t, "run-1", info.RunID)
				assert.Equal(t, i+1, info.Sequence)
				assert.False(t, info.Timestamp.IsZero())
			}
		})
	}
}

// TestStore_ListEmptyRun verifies listing an unknown run is not an error.
func TestStore_ListEmptyRun(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			infos, err := store.List("no-such-run")
			require.NoError(t, err)
			assert.Empty(t, infos)
		})
	}
}

// TestStore_Delete verifies single-entry deletion.
func TestStore_Delete(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "stage-a", []byte("x")))
			require.NoError(t, store.Save("run-1", "stage-b", []byte("y")))

			require.NoError(t, store.Delete("run-1", "stage-a"))

			_, err := store.Load("run-1", "stage-a")
			assert.ErrorIs(t, err, journal.ErrNotFound)
			_, err = store.Load("run-1", "stage-b")
			assert.NoError(t, err)

			// Deleting a missing entry is a no-op.
			assert.NoError(t, store.Delete("run-1", "ghost"))
		})
	}
}

// TestStore_DeleteRun verifies whole-run deletion leaves other runs alone.
func TestStore_DeleteRun(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			require.NoError(t, store.Save("run-1", "stage-a", []byte("x")))
			require.NoError(t, store.Save("run-1", "stage-b", []byte("y")))
			require.NoError(t, store.Save("run-2", "stage-a", []byte("z")))

			require.NoError(t, store.DeleteRun("run-1"))

			infos, err := store.List("run-1")
			require.NoError(t, err)
			assert.Empty(t, infos)

			_, err = store.Load("run-2", "stage-a")
			assert.NoError(t, err)
		})
	}
}

// TestStore_UseAfterClose verifies operations fail cleanly after Close.
func TestStore_UseAfterClose(t *testing.T) {
	for name, newStore := range newStoreFuncs(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			require.NoError(t, store.Close())

			assert.ErrorIs(t, store.Save("run-1", "stage-a", []byte("x")), journal.ErrStoreClosed)
			_, err := store.Load("run-1", "stage-a")
			assert.ErrorIs(t, err, journal.ErrStoreClosed)
			_, err = store.List("run-1")
			assert.ErrorIs(t, err, journal.ErrStoreClosed)
			assert.ErrorIs(t, store.Delete("run-1", "stage-a"), journal.ErrStoreClosed)
			assert.ErrorIs(t, store.DeleteRun("run-1"), journal.ErrStoreClosed)
		})
	}
}
