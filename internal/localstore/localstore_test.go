package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestPutGetRoundTrip(t *testing.T) {
	s, _ := openTemp(t)

	in := map[string]int{"a": 1, "b": 2}
	require.NoError(t, s.PutJSON(NamespaceCart, "items", in))

	var out map[string]int
	found, err := s.GetJSON(NamespaceCart, "items", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetAbsentKey(t *testing.T) {
	s, _ := openTemp(t)

	var out []string
	found, err := s.GetJSON(NamespaceSearch, "recent", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestDelete(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.PutJSON(NamespaceSession, "user", "x"))
	require.NoError(t, s.Delete(NamespaceSession, "user"))

	var out string
	found, err := s.GetJSON(NamespaceSession, "user", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// deleting again is a no-op
	require.NoError(t, s.Delete(NamespaceSession, "user"))
}

func TestCorruptRecordReturnsError(t *testing.T) {
	s, _ := openTemp(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(NamespaceWishlist)).Put([]byte("items"), []byte("{not json"))
	})
	require.NoError(t, err)

	var out []string
	_, err = s.GetJSON(NamespaceWishlist, "items", &out)
	assert.Error(t, err)
}

func TestNamespacesAreDisjoint(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.PutJSON(NamespaceCart, "items", []int{1}))
	require.NoError(t, s.PutJSON(NamespaceWishlist, "items", []int{2}))

	var cart, wishlist []int
	_, err := s.GetJSON(NamespaceCart, "items", &cart)
	require.NoError(t, err)
	_, err = s.GetJSON(NamespaceWishlist, "items", &wishlist)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, cart)
	assert.Equal(t, []int{2}, wishlist)
}

func TestBackup(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.PutJSON(NamespaceCart, "items", []int{1, 2, 3}))

	dst := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, s.Backup(dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// backup is a readable snapshot store
	b, err := Open(dst)
	require.NoError(t, err)
	defer b.Close()
	var out []int
	found, err := b.GetJSON(NamespaceCart, "items", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 2, 3}, out)
}
