package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileStore persists preferences as a JSON file, written atomically so a
// crash mid-write never corrupts the file.
type FileStore struct {
	path string

	mu    sync.Mutex
	prefs map[string]string
}

// NewFileStore loads (or initializes) the preference file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		prefs: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read preference file: %w", err)
	}

	if err := json.Unmarshal(data, &s.prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preference file: %w", err)
	}
	return s, nil
}

// DefaultPath returns the per-user preference file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".swapctl_session.json"), nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.prefs[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	return s.save()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = make(map[string]string)
	return s.save()
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write preference file: %w", err)
	}
	return nil
}
