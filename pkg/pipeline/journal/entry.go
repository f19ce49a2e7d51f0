package journal

import (
	"encoding/json"
	"time"
)

// Version is the current entry format version.
// Increment when making breaking changes to the entry structure.
const Version = 1

// Entry is the persisted snapshot of pipeline state after a stage.
type Entry struct {
	Version   int       `json:"version"`
	RunID     string    `json:"run_id"`
	StageID   string    `json:"stage_id"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`

	// State is the JSON-serialized pipeline state after the stage.
	State json.RawMessage `json:"state"`
}

// Marshal serializes an entry to JSON.
func (e *Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal deserializes an entry from JSON.
func Unmarshal(data []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// New creates a new entry with the given parameters.
// State must already be JSON-serialized.
func New(runID, stageID string, sequence int, state []byte) *Entry {
	return &Entry{
		Version:   Version,
		RunID:     runID,
		StageID:   stageID,
		Sequence:  sequence,
		Timestamp: time.Now().UTC(),
		State:     state,
	}
}
