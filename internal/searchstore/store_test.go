package searchstore

import (
	"path/filepath"
	"testing"

	"github.com/shoplane/storefront/internal/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	storage, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	s := New(storage, nil)
	require.NoError(t, s.Init())
	return s
}

func TestRecordMostRecentFirst(t *testing.T) {
	s := newTestStore(t)

	s.Record("iphone")
	s.Record("laptop")
	s.Record("speaker")

	assert.Equal(t, []string{"speaker", "laptop", "iphone"}, s.Recent())
}

func TestRecordDedupesExactMatch(t *testing.T) {
	s := newTestStore(t)

	s.Record("iphone")
	s.Record("laptop")
	s.Record("iphone")

	assert.Equal(t, []string{"iphone", "laptop"}, s.Recent())
}

func TestRecordCapsAtFive(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Record(q)
	}

	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, s.Recent())
}

func TestRecordIgnoresBlank(t *testing.T) {
	s := newTestStore(t)

	s.Record("")
	s.Record("   ")
	assert.Empty(t, s.Recent())
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	s.Record("iphone")

	s.Clear()
	assert.Empty(t, s.Recent())
}

func TestRehydrateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	storage, err := localstore.Open(path)
	require.NoError(t, err)
	s := New(storage, nil)
	require.NoError(t, s.Init())
	s.Record("iphone")
	s.Record("laptop")
	require.NoError(t, storage.Close())

	storage, err = localstore.Open(path)
	require.NoError(t, err)
	defer storage.Close()
	restored := New(storage, nil)
	require.NoError(t, restored.Init())

	assert.Equal(t, []string{"laptop", "iphone"}, restored.Recent())
}
