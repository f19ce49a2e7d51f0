// Package journal provides per-run state snapshot storage.
// A journal records the pipeline state after each completed stage so a
// run can be inspected after the fact. It is observability data, not a
// resume mechanism: entries for a run can be deleted at any time.
package journal

import (
	"errors"
	"time"
)

// Store persists journal entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores an entry for a run at a specific stage.
	// Overwrites if an entry for (runID, stageID) already exists.
	Save(runID, stageID string, data []byte) error

	// Load retrieves an entry.
	// Returns ErrNotFound if the entry doesn't exist.
	Load(runID, stageID string) ([]byte, error)

	// List returns metadata for all entries of a run, ordered by sequence.
	// Returns an empty slice (not an error) if the run has no entries.
	List(runID string) ([]Info, error)

	// Delete removes a specific entry.
	// Returns nil if the entry doesn't exist.
	Delete(runID, stageID string) error

	// DeleteRun removes all entries for a run.
	// Returns nil if the run has no entries.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides entry metadata without loading the full snapshot.
type Info struct {
	RunID     string
	StageID   string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("journal entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
