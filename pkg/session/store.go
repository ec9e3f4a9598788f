// Package session holds user-scoped session preferences: dismissal flags,
// the last facility used, prompt suppression. It replaces ambient storage
// access with an injectable store so callers can be tested against the
// in-memory implementation.
package session

import "sync"

// Store is a flat string key/value preference store.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Clear() error
}

// Well-known preference keys.
const (
	KeyLastFacility        = "last_facility"
	KeyMismatchWarnSeen    = "role_mismatch_warning_seen"
	KeyPushPromptDismissed = "push_prompt_dismissed"
)

// MemoryStore is the in-memory implementation, used in tests and as the
// fallback when no preference file can be opened.
type MemoryStore struct {
	mu    sync.Mutex
	prefs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.prefs[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = value
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = make(map[string]string)
	return nil
}
