// Package cache persists per-file scan verdicts between runs so unchanged
// build scripts are not rescanned.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

// Version changes whenever the scanner's rules change, invalidating caches
// written by older builds.
const Version = "1"

// Entry is the verdict recorded for one file.
type Entry struct {
	Hash       string           `json:"hash"`
	Violations types.ScanResult `json:"violations"`
}

type DB struct {
	Version string `json:"version"`
	// Source identifier -> last verdict
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "cmakecheckcache.json")
	}
	return filepath.Join(root, ".cmakecheckcache.json")
}

// Load reads the cache under root. On any error, including a version
// mismatch, an empty DB is returned alongside the error.
func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Version: Version, Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Version: Version, Entries: map[string]Entry{}}, err
	}
	if db.Version != Version {
		return DB{Version: Version, Entries: map[string]Entry{}}, errors.New("cache version mismatch")
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	db.Version = Version
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0644)
}

// Hash returns the hex xxhash of text.
func Hash(text string) string {
	if len(text) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64String(text)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// Store is a concurrency-safe view of a DB rooted at a directory. It
// satisfies the verifier's cache contract.
type Store struct {
	root  string
	mu    sync.Mutex
	db    DB
	dirty bool
}

// Open loads the cache under root, starting empty when none is usable.
func Open(root string) *Store {
	db, _ := Load(root)
	return &Store{root: root, db: db}
}

func (s *Store) Lookup(id, text string) (types.ScanResult, bool) {
	h := Hash(text)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.db.Entries[id]
	if !ok || e.Hash != h {
		return nil, false
	}
	out := make(types.ScanResult, len(e.Violations))
	copy(out, e.Violations)
	return out, true
}

func (s *Store) Store(id, text string, violations types.ScanResult) {
	e := Entry{Hash: Hash(text), Violations: make(types.ScanResult, len(violations))}
	copy(e.Violations, violations)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Entries[id] = e
	s.dirty = true
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.db.Entries)
}

// Flush writes the cache back if anything changed.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := Save(s.root, s.db); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
