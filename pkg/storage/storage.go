// Package storage provides the persistence collaborator: a keyed store with
// optional TTL expiry and versioned snapshot import/export. Failures are
// logged and reported as boolean/error returns, never panics; a failed
// operation is otherwise a no-op.
package storage

import (
	"time"
)

// SnapshotVersion is stamped into every exported snapshot document.
const SnapshotVersion = "2.0.0"

// Snapshot is the import/export document format.
type Snapshot struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Store is the persistence contract the orchestrator relies on. TTL expiry
// is checked lazily on access; Cleanup runs an explicit sweep.
type Store interface {
	Save(key string, value any, ttl time.Duration) bool
	Load(key string) (any, bool)
	Remove(key string)
	Clear()
	Cleanup() int
	ImportAll(doc []byte) error
	ExportAll() ([]byte, error)
}
