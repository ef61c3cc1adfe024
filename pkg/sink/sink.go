// Package sink implements the write side of the Schedule Sink contract:
// the caller persists a completed OptimizationResult, and any prior
// schedule at that location must be replaced atomically rather than
// merged with it.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atlantispak/packplan/internal/domain"
)

// Sink is the write side of schedule persistence: one method, an
// atomic whole-schedule replace.
type Sink interface {
	Replace(ctx context.Context, result domain.OptimizationResult) error
}

// JSONFileSink writes the result as JSON to a single file, replacing
// any prior contents by writing to a temp file in the same directory
// and renaming over the target — rename is atomic on the same
// filesystem, so a reader never observes a partially written schedule.
type JSONFileSink struct {
	Path string
}

func NewJSONFileSink(path string) *JSONFileSink {
	return &JSONFileSink{Path: path}
}

func (s *JSONFileSink) Replace(ctx context.Context, result domain.OptimizationResult) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("sink: failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: failed to marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".packplan-schedule-*.tmp")
	if err != nil {
		return fmt.Errorf("sink: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sink: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sink: failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("sink: failed to replace schedule file: %w", err)
	}
	return nil
}
