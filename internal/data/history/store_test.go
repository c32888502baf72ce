package history

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "splc/internal/core/errors"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRecordAndRecent(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)

	first, err := store.Record(Run{
		Source:     "a.spl",
		SourceHash: HashSource("main begin end $"),
		Timestamp:  base,
		Status:     StatusOK,
		Tokens:     4,
		Nodes:      7,
		Duration:   3 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = store.Record(Run{
		Source:    "a.spl",
		Timestamp: base.Add(500 * time.Millisecond),
		Status:    "SYNTAX_ERROR",
		Message:   "unexpected end",
		Strict:    true,
	})
	require.NoError(t, err)

	_, err = store.Record(Run{Source: "b.spl", Timestamp: base.Add(time.Second), Status: StatusOK})
	require.NoError(t, err)

	all, err := store.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b.spl", all[0].Source, "newest first")

	onlyA, err := store.Recent("a.spl", 10)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, "SYNTAX_ERROR", onlyA[0].Status)
	assert.True(t, onlyA[0].Strict)
	assert.False(t, onlyA[0].OK())

	got := onlyA[1]
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.OK())
	assert.Equal(t, base, got.Timestamp)
	assert.Equal(t, 3*time.Millisecond, got.Duration)
	assert.Equal(t, 7, got.Nodes)
	assert.Equal(t, HashSource("main begin end $"), got.SourceHash)

	limited, err := store.Recent("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStoreGet(t *testing.T) {
	store := openStore(t)
	run, err := store.Record(Run{Source: "x.spl", Status: StatusOK})
	require.NoError(t, err)

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "x.spl", got.Source)

	_, err = store.Get("missing")
	assert.True(t, domainerrors.IsCode(err, domainerrors.CodeNotFound))
}

func TestStoreRecordRequiresStatus(t *testing.T) {
	store := openStore(t)
	_, err := store.Record(Run{Source: "x.spl"})
	assert.True(t, domainerrors.IsCode(err, domainerrors.CodeValidationError))
}

func TestStorePrune(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Record(Run{Source: "p.spl", Timestamp: base.Add(time.Duration(i) * time.Minute), Status: StatusOK})
		require.NoError(t, err)
	}

	deleted, err := store.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	left, err := store.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, base.Add(4*time.Minute), left[0].Timestamp)
}

func TestStoreReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path, time.Second)
	require.NoError(t, err)
	_, err = store.Record(Run{Source: "r.spl", Status: StatusOK})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path, time.Second)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Recent("r.spl", 5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, path, store.Path())
}

func TestStoreOpenRejectsDirectory(t *testing.T) {
	_, err := Open(t.TempDir(), 0)
	require.Error(t, err)

	_, err = Open("  ", 0)
	require.Error(t, err)
}

func TestStoreConcurrentRecord(t *testing.T) {
	store := openStore(t)
	adapter := NewAdapter(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := adapter.Record(Run{Source: "c.spl", Status: StatusOK})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	runs, err := adapter.Recent("c.spl", 100)
	require.NoError(t, err)
	assert.Len(t, runs, 8)
}
