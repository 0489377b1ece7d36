// Package cartstore owns the list of items the shopper intends to purchase.
// It is a reducer-driven store: each public mutation dispatches one action,
// the reducer computes the next state, and the accepted state is flushed to
// the snapshot medium before subscribers are notified.
package cartstore

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/shoplane/storefront/internal/domain"
	"github.com/shoplane/storefront/internal/localstore"
	"go.uber.org/zap"
)

const (
	storageKey = "items"

	// TopicChanged is published on the bus after every accepted mutation.
	TopicChanged = "cart.changed"
)

type Store struct {
	mu      sync.Mutex
	items   []domain.CartLine
	storage *localstore.Store
	bus     EventBus.Bus
}

func New(storage *localstore.Store, bus EventBus.Bus) *Store {
	return &Store{storage: storage, bus: bus}
}

// Init rehydrates the cart from its persisted snapshot. A snapshot that no
// longer parses is discarded and the cart starts empty.
func (s *Store) Init() error {
	var items []domain.CartLine
	found, err := s.storage.GetJSON(localstore.NamespaceCart, storageKey, &items)
	if err != nil {
		zap.L().Warn("cart snapshot discarded", zap.Error(err))
		return nil
	}
	if found {
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
	}
	return nil
}

// AddItem appends the line, or increments quantity when a line with the same
// id already exists. A non-positive incoming quantity counts as 1.
func (s *Store) AddItem(line domain.CartLine) {
	s.dispatch(addItem{line: line})
}

// UpdateQuantity sets the line's quantity. Zero or negative removes the line;
// an unknown id leaves the cart unchanged.
func (s *Store) UpdateQuantity(id int64, quantity int) {
	s.dispatch(updateQuantity{id: id, quantity: quantity})
}

func (s *Store) RemoveItem(id int64) {
	s.dispatch(removeItem{id: id})
}

// Clear empties the cart. The checkout collaborator calls this after an
// order has been recorded.
func (s *Store) Clear() {
	s.dispatch(clearCart{})
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.items...)
}

// Total is the sum of price times quantity over all lines, at current price.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, line := range s.items {
		total += line.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, not the number of distinct lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, line := range s.items {
		count += line.Quantity
	}
	return count
}

// dispatch reduces, persists the accepted state, then notifies subscribers.
// Persistence failures are logged, not surfaced: cart operations are total
// functions over the in-memory state.
func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.items = reduce(s.items, a)
	snapshot := append([]domain.CartLine(nil), s.items...)
	s.mu.Unlock()

	if err := s.storage.PutJSON(localstore.NamespaceCart, storageKey, snapshot); err != nil {
		zap.L().Error("cart snapshot flush failed", zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
