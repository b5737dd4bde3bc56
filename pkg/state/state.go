// Package state provides a keyed mutable store with change notification,
// bounded undo history, and batched updates. Keys are flat dotted strings
// ("form.title"); there is no nested traversal, callers namespace by
// convention.
package state

import (
	"strings"
	"sync"
	"time"
)

// Operation identifies the kind of mutation recorded in a history entry.
type Operation string

const (
	OpSet    Operation = "set"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Wildcard subscribes a listener to every change regardless of key.
const Wildcard = "*"

// DefaultHistoryLimit bounds the undo history; oldest entries are dropped on
// overflow.
const DefaultHistoryLimit = 50

// Entry records one applied mutation. Old/New carry whole values, never
// diffs, so Update entries revert with a single restore.
type Entry struct {
	Key       string
	Old       any
	OldExists bool
	New       any
	NewExists bool
	Op        Operation
	Timestamp time.Time
}

// Change is delivered to subscribers after a mutation (or an undo) applies.
type Change struct {
	Key string
	Old any
	New any
	Op  Operation
}

// Listener consumes change notifications.
type Listener func(Change)

// Unsubscribe removes the listener it was returned for.
type Unsubscribe func()

type listenerEntry struct {
	id uint64
	fn Listener
}

// Manager is the store. Zero value is not usable; construct with New.
type Manager struct {
	mu           sync.Mutex
	data         map[string]any
	history      []Entry
	historyLimit int
	listeners    map[string][]listenerEntry
	seq          uint64
	batchDepth   int
	pending      []Change
}

// Option customises the manager configuration.
type Option func(*Manager)

// WithHistoryLimit overrides the undo history bound.
func WithHistoryLimit(limit int) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.historyLimit = limit
		}
	}
}

// New constructs an empty Manager.
func New(options ...Option) *Manager {
	m := &Manager{
		data:         make(map[string]any),
		historyLimit: DefaultHistoryLimit,
		listeners:    make(map[string][]listenerEntry),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Get returns the value stored under key. Malformed or unknown keys report
// absence rather than failing.
func (m *Manager) Get(key string) (any, bool) {
	if !validKey(key) {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok
}

// Set stores value under key, recording the previous value for undo.
func (m *Manager) Set(key string, value any) {
	if !validKey(key) {
		return
	}
	m.mu.Lock()
	old, existed := m.data[key]
	m.appendHistory(Entry{
		Key: key, Old: old, OldExists: existed,
		New: value, NewExists: true,
		Op: OpSet, Timestamp: time.Now(),
	})
	m.data[key] = value
	changes := m.queue(Change{Key: key, Old: old, New: value, Op: OpSet})
	m.mu.Unlock()
	m.deliver(changes)
}

// Update shallow-merges partial onto the map stored under key. A missing or
// non-map current value is treated as empty, so Update behaves like Set with
// a copied partial. For undo purposes the whole old and new values are
// recorded.
func (m *Manager) Update(key string, partial map[string]any) {
	if !validKey(key) {
		return
	}
	m.mu.Lock()
	old, existed := m.data[key]
	merged := make(map[string]any)
	if current, ok := old.(map[string]any); ok {
		for k, v := range current {
			merged[k] = v
		}
	}
	for k, v := range partial {
		merged[k] = v
	}
	m.appendHistory(Entry{
		Key: key, Old: old, OldExists: existed,
		New: merged, NewExists: true,
		Op: OpUpdate, Timestamp: time.Now(),
	})
	m.data[key] = merged
	changes := m.queue(Change{Key: key, Old: old, New: merged, Op: OpUpdate})
	m.mu.Unlock()
	m.deliver(changes)
}

// Delete removes key from the store. Deleting an absent key still records a
// history entry and notifies, mirroring Set symmetry.
func (m *Manager) Delete(key string) {
	if !validKey(key) {
		return
	}
	m.mu.Lock()
	old, existed := m.data[key]
	m.appendHistory(Entry{
		Key: key, Old: old, OldExists: existed,
		Op: OpDelete, Timestamp: time.Now(),
	})
	delete(m.data, key)
	changes := m.queue(Change{Key: key, Old: old, Op: OpDelete})
	m.mu.Unlock()
	m.deliver(changes)
}

// Undo reverts the most recent mutation, restoring the recorded old value
// and re-notifying subscribers. It returns false when the history is empty.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	if len(m.history) == 0 {
		m.mu.Unlock()
		return false
	}
	entry := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	current := m.data[entry.Key]
	if entry.OldExists {
		m.data[entry.Key] = entry.Old
	} else {
		delete(m.data, entry.Key)
	}
	changes := m.queue(Change{Key: entry.Key, Old: current, New: entry.Old, Op: entry.Op})
	m.mu.Unlock()
	m.deliver(changes)
	return true
}

// Subscribe registers a listener for changes to key; pass Wildcard to
// observe every change.
func (m *Manager) Subscribe(key string, fn Listener) Unsubscribe {
	if fn == nil || !validKey(key) {
		return func() {}
	}
	m.mu.Lock()
	m.seq++
	id := m.seq
	m.listeners[key] = append(m.listeners[key], listenerEntry{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		entries := m.listeners[key]
		for i, entry := range entries {
			if entry.id == id {
				m.listeners[key] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Batch runs fn with notifications suppressed, then flushes every queued
// notification once fn returns. Each change still delivers exactly once, in
// original order; repeated sets to one key are not coalesced.
func (m *Manager) Batch(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.batchDepth++
	m.mu.Unlock()

	fn()

	m.mu.Lock()
	m.batchDepth--
	var flushed []Change
	if m.batchDepth == 0 {
		flushed = m.pending
		m.pending = nil
	}
	m.mu.Unlock()
	m.deliver(flushed)
}

// History returns a copy of the undo history, oldest first.
func (m *Manager) History() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.history))
	copy(out, m.history)
	return out
}

// Snapshot returns a copy of the current key space.
func (m *Manager) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// appendHistory must be called with the lock held.
func (m *Manager) appendHistory(entry Entry) {
	if overflow := len(m.history) - m.historyLimit + 1; overflow > 0 {
		m.history = append(m.history[:0], m.history[overflow:]...)
	}
	m.history = append(m.history, entry)
}

// queue either defers the change until the enclosing batch flushes or
// returns it for immediate delivery. Must be called with the lock held.
func (m *Manager) queue(change Change) []Change {
	if m.batchDepth > 0 {
		m.pending = append(m.pending, change)
		return nil
	}
	return []Change{change}
}

// deliver invokes listeners outside the lock so handlers may re-enter the
// manager.
func (m *Manager) deliver(changes []Change) {
	for _, change := range changes {
		m.mu.Lock()
		targets := make([]listenerEntry, 0, len(m.listeners[change.Key])+len(m.listeners[Wildcard]))
		targets = append(targets, m.listeners[change.Key]...)
		targets = append(targets, m.listeners[Wildcard]...)
		m.mu.Unlock()

		for _, target := range targets {
			target.fn(change)
		}
	}
}

func validKey(key string) bool {
	return strings.TrimSpace(key) != ""
}
