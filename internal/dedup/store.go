// Package dedup persists the set of already-processed fingerprints for one
// content category.
package dedup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// state is the on-disk shape: a flat fingerprint list plus a timestamp.
type state struct {
	Fingerprints []string `json:"fingerprints"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Store is the in-memory fingerprint set for a single run. Not safe for
// concurrent use; the pipeline is sequential and each category has exactly
// one writer.
type Store struct {
	path string
	seen map[string]struct{}
}

// Load reads the persisted fingerprint set. A missing or corrupt file
// yields an empty store, never an error: re-processing an item beats
// silently losing the run.
func Load(path string) *Store {
	s := &Store{path: path, seen: map[string]struct{}{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return s
	}
	for _, fp := range st.Fingerprints {
		s.seen[fp] = struct{}{}
	}
	return s
}

// Contains reports whether a fingerprint was already processed, in a past
// run or earlier in this one.
func (s *Store) Contains(fp string) bool {
	_, ok := s.seen[fp]
	return ok
}

// Add marks a fingerprint as processed. In-memory only until Save.
func (s *Store) Add(fp string) {
	s.seen[fp] = struct{}{}
}

// Len returns the number of known fingerprints.
func (s *Store) Len() int {
	return len(s.seen)
}

// Save persists the full set plus a fresh timestamp. Written via a temp
// file and rename so a crash mid-write cannot corrupt the previous state.
// Call exactly once per run, after publishing.
func (s *Store) Save() error {
	fps := make([]string, 0, len(s.seen))
	for fp := range s.seen {
		fps = append(fps, fp)
	}
	sort.Strings(fps)

	data, err := json.MarshalIndent(state{
		Fingerprints: fps,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dedup state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write dedup state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace dedup state: %w", err)
	}
	return nil
}
