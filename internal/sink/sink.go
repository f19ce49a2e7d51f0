// Package sink persists generated content as JSON artifacts.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact describes one written output file.
type Artifact struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size_bytes"`
}

// Sink writes named JSON documents to a destination.
type Sink interface {
	// Write marshals v as indented JSON under the given file name and
	// returns a description of what was written.
	Write(name string, v any) (Artifact, error)
}

// Dir writes artifacts as files in a directory, creating it on first
// use.
type Dir struct {
	path string
}

// NewDir returns a Dir sink rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the destination directory.
func (d *Dir) Path() string {
	return d.path
}

// Write marshals v as indented JSON and writes it to name inside the
// destination directory.
func (d *Dir) Write(name string, v any) (Artifact, error) {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("sink: create directory %s: %w", d.path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("sink: marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(d.path, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("sink: write %s: %w", path, err)
	}

	return Artifact{Name: name, Path: path, Size: int64(len(data))}, nil
}
