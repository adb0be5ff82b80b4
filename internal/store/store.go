// Package store owns the four record collections (events, finance entries,
// projects, chat messages) and their persistence. The backing document is a
// single JSON file; every mutation rewrites it in full. Document sizes are
// small and writes are human-paced, so correctness wins over throughput.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
)

func init() {
	// Documents written by earlier releases store amounts as bare JSON
	// numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// document is the on-disk layout. A key absent from the file loads as an
// empty collection.
type document struct {
	Events   []Event        `json:"events"`
	Finance  []FinanceEntry `json:"finance"`
	Projects []Project      `json:"projects"`
	Chat     []ChatMessage  `json:"chat"`
}

// Store is the single source of truth for all four collections. Bubble Tea
// runs command functions on their own goroutines, so access is mutex-guarded.
type Store struct {
	mu        sync.Mutex
	path      string
	doc       document
	recovered bool
}

// New opens (or creates) the data document at path. A missing file is a
// first run and yields empty collections. A file that exists but does not
// parse also yields empty collections; the condition is recoverable and is
// reported through Recovered, never as an error.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		s.doc = document{}
		s.recovered = true
	}
	return s, nil
}

// Recovered reports whether the data file existed but could not be parsed,
// in which case the store started with a fresh set of records. The corrupt
// file stays on disk until the first mutation overwrites it.
func (s *Store) Recovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// save serializes the full in-memory state and replaces the backing
// document. The write goes through a temp file and a rename so a failed
// write never truncates the previous document. Callers hold s.mu.
func (s *Store) save() error {
	// Every top-level key serializes as an array, never null.
	doc := s.doc
	if doc.Events == nil {
		doc.Events = []Event{}
	}
	if doc.Finance == nil {
		doc.Finance = []FinanceEntry{}
	}
	if doc.Projects == nil {
		doc.Projects = []Project{}
	}
	if doc.Chat == nil {
		doc.Chat = []ChatMessage{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// DefaultDataPath returns <user config dir>/sdalocal/sdalocal_data.json.
func DefaultDataPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "sdalocal", "sdalocal_data.json"), nil
}
