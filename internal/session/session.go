package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Store is the agent's stand-in for the browser's session/local storage:
// a string key/value store with per-entry TTLs, mirrored to a JSON file so
// long-lived entries survive a restart. TTL 0 means the entry never expires.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	Value    string    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
	TTLSec   int64     `json:"ttl_sec"`
}

// Open loads the store from path. A missing or unreadable file yields an
// empty store; persistence is best-effort throughout.
func Open(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]entry),
		now:     time.Now,
	}
	data, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(data, &s.entries)
	}
	return s
}

// NewMemory returns a store with no backing file. Used in tests.
func NewMemory() *Store {
	return &Store{entries: make(map[string]entry), now: time.Now}
}

func (s *Store) Set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{Value: value, StoredAt: s.now(), TTLSec: int64(ttl / time.Second)}
	s.flushLocked()
}

// Get returns the value for key if it exists and has not expired.
// Expired entries are dropped on read.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if s.expiredLocked(e) {
		delete(s.entries, key)
		s.flushLocked()
		return "", false
	}
	return e.Value, true
}

// StoredAt reports when key was written. Zero time if absent or expired.
func (s *Store) StoredAt(key string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.expiredLocked(e) {
		return time.Time{}
	}
	return e.StoredAt
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	s.flushLocked()
}

func (s *Store) expiredLocked(e entry) bool {
	if e.TTLSec <= 0 {
		return false
	}
	return s.now().After(e.StoredAt.Add(time.Duration(e.TTLSec) * time.Second))
}

func (s *Store) flushLocked() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}

// SetClock overrides the store's time source. Used in tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
