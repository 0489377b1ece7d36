// Package searchstore keeps the most-recent free-text search queries for the
// suggestion dropdown. It sits at the boundary of the state layer but follows
// the same snapshot-on-every-mutation contract as the three core stores.
package searchstore

import (
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/shoplane/storefront/internal/localstore"
	"go.uber.org/zap"
)

const (
	storageKey = "recent"

	TopicChanged = "search.changed"

	// maxRecent caps the history at the five most recent queries.
	maxRecent = 5
)

type Store struct {
	mu      sync.Mutex
	queries []string
	storage *localstore.Store
	bus     EventBus.Bus
}

func New(storage *localstore.Store, bus EventBus.Bus) *Store {
	return &Store{storage: storage, bus: bus}
}

func (s *Store) Init() error {
	var queries []string
	found, err := s.storage.GetJSON(localstore.NamespaceSearch, storageKey, &queries)
	if err != nil {
		zap.L().Warn("recent search snapshot discarded", zap.Error(err))
		return nil
	}
	if found {
		s.mu.Lock()
		s.queries = queries
		s.mu.Unlock()
	}
	return nil
}

// Record moves the query to the front, dropping any exact duplicate and
// anything beyond the cap. Blank queries are ignored.
func (s *Store) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	next := make([]string, 0, maxRecent)
	next = append(next, query)
	for _, q := range s.queries {
		if q != query && len(next) < maxRecent {
			next = append(next, q)
		}
	}
	s.queries = next
	snapshot := append([]string(nil), next...)
	s.mu.Unlock()

	if err := s.storage.PutJSON(localstore.NamespaceSearch, storageKey, snapshot); err != nil {
		zap.L().Error("recent search flush failed", zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}

// Recent returns the history, most recent first.
func (s *Store) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Clear drops the whole history, including the persisted record.
func (s *Store) Clear() {
	s.mu.Lock()
	s.queries = nil
	s.mu.Unlock()

	if err := s.storage.Delete(localstore.NamespaceSearch, storageKey); err != nil {
		zap.L().Error("recent search clear failed", zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
