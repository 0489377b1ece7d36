// Package wishliststore owns the saved-for-later set. Entries are keyed by
// product id with set semantics and no quantity.
package wishliststore

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/shoplane/storefront/internal/domain"
	"github.com/shoplane/storefront/internal/localstore"
	"go.uber.org/zap"
)

const (
	storageKey = "items"

	TopicChanged = "wishlist.changed"
)

type Store struct {
	mu      sync.Mutex
	items   []domain.WishlistEntry
	storage *localstore.Store
	bus     EventBus.Bus
}

func New(storage *localstore.Store, bus EventBus.Bus) *Store {
	return &Store{storage: storage, bus: bus}
}

func (s *Store) Init() error {
	var items []domain.WishlistEntry
	found, err := s.storage.GetJSON(localstore.NamespaceWishlist, storageKey, &items)
	if err != nil {
		zap.L().Warn("wishlist snapshot discarded", zap.Error(err))
		return nil
	}
	if found {
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
	}
	return nil
}

// AddEntry inserts the entry unless one with the same id is already present.
func (s *Store) AddEntry(entry domain.WishlistEntry) {
	s.dispatch(addEntry{entry: entry})
}

func (s *Store) RemoveEntry(id int64) {
	s.dispatch(removeEntry{id: id})
}

func (s *Store) Clear() {
	s.dispatch(clearWishlist{})
}

// Contains reports membership by product id. It reads the same state the
// last flush persisted, so UI toggles never see stale membership.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) Items() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistEntry(nil), s.items...)
}

// ItemCount is the number of distinct entries.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.items = reduce(s.items, a)
	snapshot := append([]domain.WishlistEntry(nil), s.items...)
	s.mu.Unlock()

	if err := s.storage.PutJSON(localstore.NamespaceWishlist, storageKey, snapshot); err != nil {
		zap.L().Error("wishlist snapshot flush failed", zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
