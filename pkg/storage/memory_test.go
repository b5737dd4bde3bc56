package storage

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietStore(opts ...MemoryOption) *Memory {
	opts = append([]MemoryOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewMemory(opts...)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	store := quietStore()
	require.True(t, store.Save("draft", map[string]any{"title": "T"}, 0))

	got, ok := store.Load("draft")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"title": "T"}, got)
}

func TestSaveUnserializableValue(t *testing.T) {
	t.Parallel()

	store := quietStore()
	assert.False(t, store.Save("bad", make(chan int), 0))

	_, ok := store.Load("bad")
	assert.False(t, ok, "failed save must leave no entry behind")
}

func TestTTLLazyExpiry(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := quietStore(WithClock(func() time.Time { return current }))

	require.True(t, store.Save("k", "v", time.Minute))

	_, ok := store.Load("k")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = store.Load("k")
	assert.False(t, ok, "expired entry must report absence on access")
}

func TestCleanupSweep(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := quietStore(WithClock(func() time.Time { return current }))

	store.Save("a", 1, time.Minute)
	store.Save("b", 2, time.Hour)
	store.Save("c", 3, 0)

	current = current.Add(30 * time.Minute)
	assert.Equal(t, 1, store.Cleanup())

	_, ok := store.Load("b")
	assert.True(t, ok)
	_, ok = store.Load("c")
	assert.True(t, ok, "entries without TTL never expire")
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	store := quietStore()
	store.Save("a", 1, 0)
	store.Save("b", 2, 0)

	store.Remove("a")
	_, ok := store.Load("a")
	assert.False(t, ok)

	store.Clear()
	_, ok = store.Load("b")
	assert.False(t, ok)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	store := quietStore()
	store.Save("form", map[string]any{"title": "T"}, 0)

	doc, err := store.ExportAll()
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(doc, &snapshot))
	assert.Equal(t, SnapshotVersion, snapshot.Version)
	assert.NotEmpty(t, snapshot.Timestamp)

	fresh := quietStore()
	require.NoError(t, fresh.ImportAll(doc))
	got, ok := fresh.Load("form")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"title": "T"}, got)
}

func TestImportRejectsMissingData(t *testing.T) {
	t.Parallel()

	store := quietStore()
	store.Save("keep", "v", 0)

	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"version":"2.0.0"}`),
		[]byte(`{"data": "not-an-object"}`),
		[]byte(`not json at all`),
	}
	for _, doc := range cases {
		err := store.ImportAll(doc)
		assert.ErrorIs(t, err, ErrInvalidSnapshot, "doc %s", doc)
	}

	// Rejected imports leave existing state untouched.
	got, ok := store.Load("keep")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}
