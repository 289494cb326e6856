// Package dedup provides the durable identifier logs that guarantee
// at-most-once processing of an entity across runs.
package dedup

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// TextStore persists simple string identifiers as a newline-delimited file,
// one identifier per line. Appends are write-through: an action is only
// considered committed once its identifier hit the disk.
type TextStore struct {
	Path string
}

// NewTextStore returns a TextStore backed by the given file path.
// The file does not need to exist yet.
func NewTextStore(path string) *TextStore {
	return &TextStore{Path: path}
}

// Load reads all identifiers into a set. A missing file yields an empty set.
// A read failure also yields an empty set rather than an error: the store
// degrades to "nothing seen yet" and the run proceeds, accepting the risk of
// re-performing idempotent actions.
func (s *TextStore) Load() map[string]bool {
	set := make(map[string]bool)
	f, err := os.Open(s.Path)
	if err != nil {
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("WARNING: partial read of %s, identifiers past the failure count as unseen: %v\n", s.Path, err)
	}
	return set
}

// Contains reports whether the identifier is already recorded.
func (s *TextStore) Contains(id string) bool {
	return s.Load()[id]
}

// Append durably records a new identifier. The write is flushed before
// returning so a crash immediately after the corresponding external action
// cannot lose the log entry.
func (s *TextStore) Append(id string) error {
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(id + "\n"); err != nil {
		return err
	}
	return f.Sync()
}

// Rewrite replaces the whole file with the given set, sorted for stable
// diffs. Used by the URL-log rebuild utility.
func (s *TextStore) Rewrite(ids map[string]bool) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var sb strings.Builder
	for _, id := range sorted {
		sb.WriteString(id)
		sb.WriteString("\n")
	}
	return os.WriteFile(s.Path, []byte(sb.String()), 0644)
}

// BirthdayEntry records a single birthday wish so the same person is never
// messaged twice on the same date.
type BirthdayEntry struct {
	FullName string `json:"fullName"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

// Key returns the uniqueness key for the entry.
func (e BirthdayEntry) Key() string {
	return e.FullName + "|" + e.Date
}

// JSONStore persists rich entries as an indented JSON array. Unlike
// TextStore it is rewritten whole on every save so the file stays
// internally consistent (no partial-record corruption).
type JSONStore[T any] struct {
	Path string
}

// NewJSONStore returns a JSONStore backed by the given file path.
func NewJSONStore[T any](path string) *JSONStore[T] {
	return &JSONStore[T]{Path: path}
}

// Load reads all entries. Missing or malformed files yield an empty slice;
// corruption is downgraded to a fresh store rather than an error.
func (s *JSONStore[T]) Load() []T {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil
	}
	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Save rewrites the whole collection.
func (s *JSONStore[T]) Save(entries []T) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}

// AppendAndSave appends one entry and persists the full collection before
// returning.
func (s *JSONStore[T]) AppendAndSave(entries []T, entry T) ([]T, error) {
	entries = append(entries, entry)
	if err := s.Save(entries); err != nil {
		return entries, err
	}
	return entries, nil
}
