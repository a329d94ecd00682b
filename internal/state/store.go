package state

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store manages the processed-record log. All writes are serialized through
// one mutex so concurrent readers of the file never observe a torn line.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore binds a store to the log file at path. The file is created lazily
// on first append.
func NewStore(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("state store path required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Store{path: trimmed}, nil
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record to the end of the log.
func (s *Store) Append(rec Record) error {
	if strings.TrimSpace(rec.Path) == "" {
		return errors.New("record path required")
	}
	if strings.ContainsAny(rec.Path, "\t\n") || strings.ContainsAny(rec.Value, "\t\n") {
		return fmt.Errorf("record for %q contains reserved characters", rec.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(rec.line()); err != nil {
		return fmt.Errorf("append state record: %w", err)
	}
	return nil
}

// Load reads every valid record in append order. A missing file is an empty
// store, not an error.
func (s *Store) Load() (Records, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (Records, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open state store: %w", err)
	}
	defer file.Close()

	var records Records
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if rec, ok := parseLine(scanner.Text()); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read state store: %w", err)
	}
	return records, nil
}

// Lookup returns the most recent record for path.
func (s *Store) Lookup(path string) (Record, bool, error) {
	records, err := s.Load()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := records.Lookup(path)
	return rec, ok, nil
}

// Remove deletes every record for path by rewriting the log through a temp
// file in the same directory and renaming it into place.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	kept := records[:0]
	removed := false
	for _, rec := range records {
		if rec.Path == path {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".processed-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	for _, rec := range kept {
		if _, err := tmp.WriteString(rec.line()); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("write temp state file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state store: %w", err)
	}
	return nil
}
