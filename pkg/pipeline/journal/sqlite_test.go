package journal_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")

	store1, err := journal.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	require.NoError(t, store1.Save("run-1", "stage-a", []byte("persistent")))
	require.NoError(t, store1.Close())

	// Reopening the database must see the earlier save.
	store2, err := journal.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	data, err := store2.Load("run-1", "stage-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("persistent"), data)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := journal.NewSQLiteStore("/nonexistent/path/journal.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := journal.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_SequenceAdvancesOnOverwrite(t *testing.T) {
	store, err := journal.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("run-1", "stage-a", []byte("first")))
	require.NoError(t, store.Save("run-1", "stage-b", []byte("second")))
	require.NoError(t, store.Save("run-1", "stage-a", []byte("rewritten")))

	infos, err := store.List("run-1")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// stage-a was rewritten last, so it now carries the highest sequence.
	assert.Equal(t, "stage-b", infos[0].StageID)
	assert.Equal(t, "stage-a", infos[1].StageID)
	assert.Greater(t, infos[1].Sequence, infos[0].Sequence)
}

func TestSQLiteStore_LargeData(t *testing.T) {
	store, err := journal.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	// 1MB of data
	largeData := make([]byte, 1024*1024)
	for i := range largeData {
		largeData[i] = byte(i % 256)
	}

	require.NoError(t, store.Save("run-1", "large", largeData))

	loaded, err := store.Load("run-1", "large")
	require.NoError(t, err)
	assert.Equal(t, largeData, loaded)

	infos, err := store.List("run-1")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int64(1024*1024), infos[0].Size)
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := journal.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	const numGoroutines = 50
	const numOps = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			runID := "run-" + string(rune('a'+id%26))
			for j := 0; j < numOps; j++ {
				stageID := "stage-" + string(rune('0'+j%10))
				data := []byte("data")

				switch j % 4 {
				case 0, 1:
					_ = store.Save(runID, stageID, data)
				case 2:
					_, _ = store.Load(runID, stageID)
				case 3:
					_, _ = store.List(runID)
				}
			}
		}(i)
	}

	wg.Wait()
}
