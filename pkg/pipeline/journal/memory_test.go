package journal_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
)

func TestMemoryStore_Len(t *testing.T) {
	store := journal.NewMemoryStore()
	defer store.Close()

	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Save("run-1", "stage-a", []byte("a")))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Save("run-1", "stage-b", []byte("b")))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Save("run-2", "stage-a", []byte("x")))
	assert.Equal(t, 3, store.Len())

	require.NoError(t, store.Delete("run-1", "stage-a"))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.DeleteRun("run-1"))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_DataIsolated(t *testing.T) {
	store := journal.NewMemoryStore()
	defer store.Close()

	original := []byte("immutable")
	require.NoError(t, store.Save("run-1", "stage-a", original))

	// Mutating the caller's slice must not affect the stored copy.
	original[0] = 'X'

	loaded, err := store.Load("run-1", "stage-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), loaded)

	// Mutating the loaded slice must not affect what a later Load sees.
	loaded[0] = 'Y'
	again, err := store.Load("run-1", "stage-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := journal.NewMemoryStore()
	defer store.Close()

	const numGoroutines = 100
	const numOps = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			runID := "run-" + string(rune('a'+id%26))
			for j := 0; j < numOps; j++ {
				stageID := "stage-" + string(rune('0'+j%10))
				data := []byte("data")

				// Mix of operations
				switch j % 5 {
				case 0, 1:
					_ = store.Save(runID, stageID, data)
				case 2:
					_, _ = store.Load(runID, stageID)
				case 3:
					_, _ = store.List(runID)
				case 4:
					_ = store.Delete(runID, stageID)
				}
			}
		}(i)
	}

	wg.Wait()

	// Should not panic or deadlock; final contents do not matter.
}
