// Package status reads and writes the per-item status-flag record that
// encodes which pipeline stages a work item has completed.
package status

import (
	"fmt"
	"os"
	"strings"
)

// StageState is the value of a named stage inside a status record.
type StageState string

const (
	// StatePending marks a stage that has not run yet.
	StatePending StageState = "pending"
	// StateComplete marks a successfully finished data stage.
	StateComplete StageState = "complete"
	// StateProcessed marks a fully generated work item (outer Status stage).
	StateProcessed StageState = "processed"
	// StateError marks a failed attempt; eligibility for retry depends on the stage.
	StateError StageState = "error"
	// StateNotFound is returned when the record file itself is missing.
	StateNotFound StageState = "not_found"
	// StateUnknown is returned when the record exists but lacks the key.
	StateUnknown StageState = "unknown"
)

// Well-known stage keys.
const (
	KeyStatus     = "Status"
	KeyDataStatus = "Data-Status"
)

// ReadStage parses the flat key:value record at path and returns the state
// of the named stage. Key matching is a case-insensitive prefix match on
// "<key>:". A missing file yields StateNotFound, a missing key StateUnknown.
func ReadStage(path, key string) StageState {
	data, err := os.ReadFile(path)
	if err != nil {
		return StateNotFound
	}

	prefix := strings.ToLower(key) + ":"
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(trimmed, prefix) {
			_, value, _ := strings.Cut(strings.TrimSpace(line), ":")
			return StageState(strings.ToLower(strings.TrimSpace(value)))
		}
	}
	return StateUnknown
}

// WriteStage rewrites the record in place, replacing only the line whose key
// matches and preserving every other line verbatim. The full new content is
// built in memory first so a reader observes either the old record or the
// new one, never a torn line.
func WriteStage(path, key string, state StageState) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read status record %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	prefix := strings.ToLower(key) + ":"
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), prefix) {
			lines[i] = fmt.Sprintf("%s: %s", key, state)
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("stage key %q not found in %s", key, path)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to update %s in %s: %w", key, path, err)
	}
	return nil
}
