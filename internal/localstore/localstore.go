// Package localstore is the durable snapshot medium shared by all stores.
// It mirrors the browser local-storage contract: flat JSON records under
// string keys, grouped into one namespace (bucket) per store so no two
// stores can conflict on a write.
package localstore

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Namespaces owned by the stores. Each store writes only within its own.
const (
	NamespaceSession  = "session"
	NamespaceCart     = "cart"
	NamespaceWishlist = "wishlist"
	NamespaceSearch   = "search"
)

var namespaces = []string{
	NamespaceSession,
	NamespaceCart,
	NamespaceWishlist,
	NamespaceSearch,
}

// Store wraps a single bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the snapshot file and ensures all
// namespaces exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "localstore: create dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "localstore: open %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, ns := range namespaces {
			if _, err := tx.CreateBucketIfNotExists([]byte(ns)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "localstore: init namespaces")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the underlying file.
func (s *Store) Path() string {
	return s.db.Path()
}

// PutJSON serializes v and stores it under ns/key, replacing any prior value.
func (s *Store) PutJSON(ns, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "localstore: marshal %s/%s", ns, key)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ns)).Put([]byte(key), data)
	})
	return errors.Wrapf(err, "localstore: put %s/%s", ns, key)
}

// GetJSON reads ns/key into out. It returns false when the record is absent;
// a stored value that no longer parses is returned as an error so the caller
// can decide to discard it.
func (s *Store) GetJSON(ns, key string, out interface{}) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(ns)).Get([]byte(key)); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "localstore: get %s/%s", ns, key)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, errors.Wrapf(err, "localstore: decode %s/%s", ns, key)
	}
	return true, nil
}

// Delete removes ns/key. Deleting an absent key is not an error.
func (s *Store) Delete(ns, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ns)).Delete([]byte(key))
	})
	return errors.Wrapf(err, "localstore: delete %s/%s", ns, key)
}

// Backup writes a consistent copy of the whole snapshot file to path.
func (s *Store) Backup(path string) error {
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(path, 0o600)
	})
	return errors.Wrapf(err, "localstore: backup to %s", path)
}
