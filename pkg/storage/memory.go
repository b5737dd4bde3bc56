package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidSnapshot is returned when an import document lacks a parsable
// top-level data object. The whole import is rejected; no partial state is
// applied.
var ErrInvalidSnapshot = errors.New("storage: snapshot has no parsable data object")

type entry struct {
	raw     json.RawMessage
	expires time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Memory is the in-process Store implementation. Values are kept in their
// JSON encoding so snapshot export is a straight re-assembly and
// unserializable values fail fast at Save time.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	logger  *slog.Logger
	now     func() time.Time
}

// MemoryOption customises the store configuration.
type MemoryOption func(*Memory)

// WithLogger overrides the logger used to report serialization failures.
func WithLogger(logger *slog.Logger) MemoryOption {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the time source. Tests use this to force expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory constructs an empty in-memory store.
func NewMemory(options ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

var _ Store = (*Memory)(nil)

// Save stores value under key, replacing any previous entry. A ttl of zero
// means no expiry. Serialization failure logs, leaves the previous entry
// untouched, and returns false.
func (m *Memory) Save(key string, value any, ttl time.Duration) bool {
	if key == "" {
		return false
	}
	raw, err := json.Marshal(value)
	if err != nil {
		m.logger.Error("storage save failed", "key", key, "error", err)
		return false
	}

	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry{raw: raw, expires: expires}
	m.mu.Unlock()
	return true
}

// Load returns the value stored under key. Expired entries are dropped on
// access and report absence.
func (m *Memory) Load(key string) (any, bool) {
	m.mu.Lock()
	stored, ok := m.entries[key]
	if ok && stored.expired(m.now()) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, false
	}

	var value any
	if err := json.Unmarshal(stored.raw, &value); err != nil {
		m.logger.Error("storage load failed", "key", key, "error", err)
		return nil, false
	}
	return value, true
}

// Remove deletes key. Removing an absent key is a no-op.
func (m *Memory) Remove(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Cleanup sweeps expired entries and returns how many were removed. This is
// the only eager expiry pass; normal access expires lazily.
func (m *Memory) Cleanup() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, stored := range m.entries {
		if stored.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// ImportAll replaces the store contents with the snapshot document. The
// document is rejected whole when its top-level data key is absent or not an
// object; nothing is applied on failure.
func (m *Memory) ImportAll(doc []byte) error {
	data := gjson.GetBytes(doc, "data")
	if !data.Exists() || !data.IsObject() {
		return ErrInvalidSnapshot
	}

	var snapshot Snapshot
	if err := json.Unmarshal(doc, &snapshot); err != nil {
		return fmt.Errorf("storage: decode snapshot: %w", err)
	}

	entries := make(map[string]entry, len(snapshot.Data))
	for key, value := range snapshot.Data {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("storage: encode snapshot entry %q: %w", key, err)
		}
		entries[key] = entry{raw: raw}
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	return nil
}

// ExportAll serializes the live (unexpired) entries into a versioned
// snapshot document.
func (m *Memory) ExportAll() ([]byte, error) {
	now := m.now()
	data := make(map[string]any)

	m.mu.Lock()
	for key, stored := range m.entries {
		if stored.expired(now) {
			continue
		}
		var value any
		if err := json.Unmarshal(stored.raw, &value); err != nil {
			m.mu.Unlock()
			return nil, fmt.Errorf("storage: decode entry %q: %w", key, err)
		}
		data[key] = value
	}
	m.mu.Unlock()

	snapshot := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: now.UTC().Format(time.RFC3339),
		Data:      data,
	}
	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage: encode snapshot: %w", err)
	}
	return out, nil
}
