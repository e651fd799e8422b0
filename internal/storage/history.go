package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// HistoryEntry records one deploy attempt.
type HistoryEntry struct {
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Path      string    `json:"path,omitempty"`
	Success   bool      `json:"success"`
	Errors    int       `json:"errors"`
	Warnings  int       `json:"warnings"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore persists deploy history in a local JSON file.
type HistoryStore struct {
	mu  sync.Mutex
	dir string
}

// NewHistoryStore creates a history store at the given directory.
func NewHistoryStore(dir string) *HistoryStore {
	return &HistoryStore{dir: dir}
}

func (s *HistoryStore) filePath() string {
	return filepath.Join(s.dir, "history.json")
}

// Append adds an entry to the history.
func (s *HistoryStore) Append(entry HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readUnsafe()
	if err != nil {
		entries = nil // Start fresh if file is corrupted
	}

	entry.CreatedAt = time.Now()
	entries = append(entries, entry)

	return s.writeUnsafe(entries)
}

// List returns all entries in the history.
func (s *HistoryStore) List() ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readUnsafe()
}

// Recent returns the last N entries. A non-positive N returns none.
func (s *HistoryStore) Recent(n int) ([]HistoryEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		return nil, nil
	}
	if len(entries) <= n {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeUnsafe(nil)
}

func (s *HistoryStore) readUnsafe() ([]HistoryEntry, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) writeUnsafe(entries []HistoryEntry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(s.filePath(), data, 0o644)
}
