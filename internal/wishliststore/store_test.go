package wishliststore

import (
	"path/filepath"
	"testing"

	"github.com/shoplane/storefront/internal/domain"
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

func entry(id int64) domain.WishlistEntry {
	return domain.WishlistEntry{
		ID:       id,
		Name:     "JBL Flip 6 Speaker",
		Price:    45000,
		Image:    "/products/flip6.jpg",
		Rating:   4.7,
		Reviews:  89,
		Category: "electronics",
		Brand:    "JBL",
		InStock:  true,
	}
}

func TestAddEntryNoDuplicates(t *testing.T) {
	s := newTestStore(t)

	s.AddEntry(entry(1))
	s.AddEntry(entry(1))

	assert.Equal(t, 1, s.ItemCount())
	assert.True(t, s.Contains(1))
}

func TestContainsTracksMembership(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Contains(1))
	s.AddEntry(entry(1))
	assert.True(t, s.Contains(1))
	s.RemoveEntry(1)
	assert.False(t, s.Contains(1))
}

func TestRemoveEntryUnknownIdIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.AddEntry(entry(1))

	s.RemoveEntry(99)
	assert.Equal(t, 1, s.ItemCount())
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	s.AddEntry(entry(1))
	s.AddEntry(entry(2))

	s.Clear()
	assert.Zero(t, s.ItemCount())
	assert.False(t, s.Contains(1))
}

func TestRehydrateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	storage, err := localstore.Open(path)
	require.NoError(t, err)
	s := New(storage, nil)
	require.NoError(t, s.Init())
	s.AddEntry(entry(1))
	s.AddEntry(entry(2))
	s.RemoveEntry(1)
	require.NoError(t, storage.Close())

	storage, err = localstore.Open(path)
	require.NoError(t, err)
	defer storage.Close()
	restored := New(storage, nil)
	require.NoError(t, restored.Init())

	assert.Equal(t, 1, restored.ItemCount())
	assert.False(t, restored.Contains(1))
	assert.True(t, restored.Contains(2))
	assert.Equal(t, s.Items(), restored.Items())
}
