// Package persistence keeps the local high score table as a JSON file.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// maxEntries caps the table at a classic arcade top ten.
const maxEntries = 10

// HighScore is one finished run.
type HighScore struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	At    time.Time `json:"at"`
}

// Store is an in-memory high score table bound to a file path. Loads and
// saves are explicit; the caller decides when to hit the disk.
type Store struct {
	path    string
	entries []HighScore
}

// Open loads the table at path. A missing file is not an error, it just
// means nobody has finished a run yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	s.sort()
	return s, nil
}

// Entries returns the table, best first.
func (s *Store) Entries() []HighScore {
	return s.entries
}

// Best returns the top entry, or a zero value when the table is empty.
func (s *Store) Best() HighScore {
	if len(s.entries) == 0 {
		return HighScore{}
	}
	return s.entries[0]
}

// Qualifies reports whether a score would make the table.
func (s *Store) Qualifies(score int) bool {
	if len(s.entries) < maxEntries {
		return true
	}
	return score > s.entries[len(s.entries)-1].Score
}

// Add inserts a run into the table, filling in the ID and timestamp, and
// trims anything pushed past the cap. It does not write to disk.
func (s *Store) Add(hs HighScore) HighScore {
	if hs.ID == "" {
		hs.ID = uuid.New().String()
	}
	if hs.At.IsZero() {
		hs.At = time.Now()
	}
	s.entries = append(s.entries, hs)
	s.sort()
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
	return hs
}

// Save writes the table back to its file, creating parent directories as
// needed.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("scores dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}

// sort orders the table best first, newest winning ties.
func (s *Store) sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		if s.entries[i].Score != s.entries[j].Score {
			return s.entries[i].Score > s.entries[j].Score
		}
		return s.entries[i].At.After(s.entries[j].At)
	})
}
